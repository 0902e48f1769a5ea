package http

import (
	"net/http"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func registerIncidentHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req incidentRequest
		files, err := decodeRequest(w, r, &req)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		created, err := uc.RegisterIncident(r.Context(), req.toModel(), files...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toCreated(created, toIncident))
	}
}

func listIncidentsHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		incidents, err := uc.ListIncidents(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(incidents, toIncident))
	}
}

func getIncidentHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		incident, err := uc.GetIncident(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toIncident(incident))
	}
}

func changeIncidentStatusHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req incidentStatusRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		status, err := parseWith("status", req.Status, types.ParseIncidentStatus)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		var findings *usecase.InvestigationInput
		if f := req.Findings; f != nil {
			findings = &usecase.InvestigationInput{
				ImmediateCauses:   f.ImmediateCauses,
				BasicCauses:       f.BasicCauses,
				RootCauseAnalysis: f.RootCauseAnalysis,
				ImmediateMeasures: f.ImmediateMeasures,
			}
		}

		incident, err := uc.ChangeIncidentStatus(r.Context(), id, status, findings)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toIncident(incident))
	}
}

func incidentStatisticsHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		stats, err := uc.Statistics(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, incidentStatisticsResponse{
			Total:   stats.Total,
			ByType:  stats.ByType,
			ByArea:  stats.ByArea,
			ByMonth: toMonthCounts(stats.ByMonth),
		})
	}
}

func addActionHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		incidentID, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req actionRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}

		action, err := uc.AddCorrectiveAction(r.Context(), &model.CorrectiveAction{
			IncidentID:  incidentID,
			Description: req.Description,
			Type:        types.ActionType(req.Type),
			OwnerUserID: req.OwnerUserID,
			DueDate:     req.DueDate,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toAction(action))
	}
}

// listActionsHandler lists the actions of one incident, or of every
// incident when the route has no incident ID. user_id filters by owner.
func listActionsHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incidentID int64
		if hasURLParam(r, "id") {
			id, err := pathID(r, "id")
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}
			incidentID = id
		}
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		actions, err := uc.ListCorrectiveActions(r.Context(), incidentID, opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(actions, toAction))
	}
}

func changeActionStatusHandler(uc *usecase.IncidentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req actionStatusRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		status, err := parseWith("status", req.Status, types.ParseActionStatus)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		action, err := uc.ChangeActionStatus(r.Context(), id, status, req.EvidenceURL, req.Notes)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toAction(action))
	}
}
