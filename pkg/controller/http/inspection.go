package http

import (
	"net/http"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func createChecklistHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checklistRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		checklist, err := uc.CreateChecklist(r.Context(), req.toModel())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toChecklist(checklist))
	}
}

func listChecklistsHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		checklists, err := uc.ListChecklists(r.Context(), queryBool(r, "active"), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(checklists, toChecklist))
	}
}

func getChecklistHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		checklist, err := uc.GetChecklist(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toChecklist(checklist))
	}
}

func scheduleInspectionHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inspectionRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		inspection, err := uc.ScheduleInspection(r.Context(), &model.Inspection{
			ChecklistID:     req.ChecklistID,
			Area:            req.Area,
			ScheduledDate:   req.ScheduledDate,
			InspectorUserID: req.InspectorUserID,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toInspection(inspection))
	}
}

func listInspectionsHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		inspections, err := uc.ListInspections(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(inspections, toInspection))
	}
}

func getInspectionHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		inspection, err := uc.GetInspection(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toInspection(inspection))
	}
}

func changeInspectionStatusHandler(uc *usecase.InspectionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req inspectionStatusRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		status, err := parseWith("status", req.Status, types.ParseInspectionStatus)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		var result *usecase.InspectionResult
		if req.Observations != "" || len(req.Answers) > 0 {
			result = &usecase.InspectionResult{
				Observations: req.Observations,
				Answers: convertAll(req.Answers, func(a inspectionAnswerDTO) model.InspectionAnswer {
					return model.InspectionAnswer{ItemIndex: a.ItemIndex, Compliant: a.Compliant, Comment: a.Comment}
				}),
			}
		}

		inspection, err := uc.ChangeInspectionStatus(r.Context(), id, status, result)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toInspection(inspection))
	}
}
