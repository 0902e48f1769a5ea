package http

import (
	"net/http"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

func createEPPHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eppRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		item, err := uc.CreateItem(r.Context(), req.toModel())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toEPP(item))
	}
}

func listEPPHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		items, err := uc.ListItems(r.Context(), queryBool(r, "low_stock"), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(items, toEPP))
	}
}

func getEPPHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		item, err := uc.GetItem(r.Context(), id)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toEPP(item))
	}
}

func updateStockHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req stockRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		item, err := uc.UpdateStock(r.Context(), id, req.Delta)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toEPP(item))
	}
}

func inventoryValueHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := uc.InventoryValue(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, map[string]float64{"inventory_value": value})
	}
}

func assignEPPHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignmentRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		assignment, err := uc.Assign(r.Context(), &model.EPPAssignment{
			EPPID:      req.EPPID,
			UserID:     req.UserID,
			Quantity:   req.Quantity,
			AssignedAt: req.AssignedAt,
			ExpiresAt:  req.ExpiresAt,
			Notes:      req.Notes,
		})
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusCreated, toAssignment(assignment))
	}
}

func listAssignmentsHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := listOptions(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		assignments, err := uc.ListAssignments(r.Context(), opts...)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(assignments, toAssignment))
	}
}

func returnAssignmentHandler(uc *usecase.EPPUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		var req returnRequest
		if _, err := decodeRequest(w, r, &req); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		assignment, err := uc.ReturnAssignment(r.Context(), id, req.Notes)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toAssignment(assignment))
	}
}

func expiringAssignmentsHandler(uc *usecase.EPPUseCase, defaultDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := queryInt(r, "days", defaultDays)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		expiring, err := uc.ExpiringAssignments(r.Context(), days)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(expiring, toExpiring))
	}
}
