package http_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/xuri/excelize/v2"
)

type idResponse struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

type createdResponse struct {
	Record struct {
		ID           int64    `json:"id"`
		Code         string   `json:"code"`
		Band         string   `json:"band"`
		Status       string   `json:"status"`
		EvidenceURLs []string `json:"evidence_urls"`
		FileURL      string   `json:"file_url"`
	} `json:"record"`
	Warnings []string `json:"warnings"`
}

func riskBody() map[string]any {
	return map[string]any{
		"description": "Unguarded conveyor belt",
		"area":        "Warehouse",
		"risk_type":   "mechanical",
		"probability": 4,
		"severity":    5,
	}
}

func TestRiskEndpoints(t *testing.T) {
	ts := newTestServer(t)
	worker := ts.user("worker@example.com", "user")
	sup := ts.user("sup@example.com", "supervisor")

	resp := worker.do(http.MethodPost, "/api/risks", riskBody())
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var created createdResponse
	decode(t, resp, &created)
	gt.Value(t, created.Record.Band).Equal("critical")
	gt.String(t, created.Record.Code).Contains("RISK-")
	riskPath := fmt.Sprintf("/api/risks/%d", created.Record.ID)

	t.Run("get and list", func(t *testing.T) {
		resp := worker.do(http.MethodGet, riskPath, nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)

		resp = worker.do(http.MethodGet, "/api/risks?area=Warehouse", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		var list []idResponse
		decode(t, resp, &list)
		gt.A(t, list).Length(1)

		resp = worker.do(http.MethodGet, "/api/risks?area=Office", nil)
		decode(t, resp, &list)
		gt.A(t, list).Length(0)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		resp := worker.do(http.MethodPost, "/api/risks", map[string]any{"probability": 2, "severity": 2})
		gt.Value(t, resp.Code).Equal(http.StatusUnprocessableEntity)
		gt.String(t, resp.Body.String()).Contains("description")
		gt.String(t, resp.Body.String()).Contains("risk_type")
	})

	t.Run("bad ids", func(t *testing.T) {
		gt.Value(t, worker.do(http.MethodGet, "/api/risks/abc", nil).Code).Equal(http.StatusBadRequest)
		gt.Value(t, worker.do(http.MethodGet, "/api/risks/999", nil).Code).Equal(http.StatusNotFound)
	})

	t.Run("status changes need a supervisor", func(t *testing.T) {
		body := map[string]any{"status": "in_control"}
		gt.Value(t, worker.do(http.MethodPatch, riskPath+"/status", body).Code).Equal(http.StatusForbidden)

		resp := sup.do(http.MethodPatch, riskPath+"/status", body)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		var r idResponse
		decode(t, resp, &r)
		gt.Value(t, r.Status).Equal("in_control")
	})

	t.Run("unknown and illegal statuses", func(t *testing.T) {
		resp := sup.do(http.MethodPatch, riskPath+"/status", map[string]any{"status": "done"})
		gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

		// in_control cannot close directly
		resp = sup.do(http.MethodPatch, riskPath+"/status", map[string]any{"status": "closed"})
		gt.Value(t, resp.Code).Equal(http.StatusConflict)
	})

	t.Run("update re-classifies", func(t *testing.T) {
		body := riskBody()
		body["probability"] = 1
		body["severity"] = 2
		resp := sup.do(http.MethodPut, riskPath, body)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		gt.String(t, resp.Body.String()).Contains(`"band":"low"`)
	})

	t.Run("dashboard and matrix", func(t *testing.T) {
		resp := worker.do(http.MethodGet, "/api/risks/dashboard", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		gt.String(t, resp.Body.String()).Contains(`"total":1`)

		resp = worker.do(http.MethodGet, "/api/risks/matrix", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		var rows [][]map[string]any
		decode(t, resp, &rows)
		gt.A(t, rows).Length(5)
	})

	t.Run("evidence upload", func(t *testing.T) {
		resp := worker.multipart(riskPath+"/evidence", map[string]any{}, "photo.jpg", []byte("jpeg"))
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		var c createdResponse
		decode(t, resp, &c)
		gt.A(t, c.Record.EvidenceURLs).Length(1)
	})

	t.Run("delete needs admin", func(t *testing.T) {
		gt.Value(t, sup.do(http.MethodDelete, riskPath, nil).Code).Equal(http.StatusForbidden)
		admin := ts.admin("admin@example.com")
		gt.Value(t, admin.do(http.MethodDelete, riskPath, nil).Code).Equal(http.StatusNoContent)
		gt.Value(t, admin.do(http.MethodGet, riskPath, nil).Code).Equal(http.StatusNotFound)
	})
}

func TestIncidentEndpoints(t *testing.T) {
	ts := newTestServer(t)
	worker := ts.user("worker@example.com", "user")
	sup := ts.user("sup@example.com", "supervisor")

	body := map[string]any{
		"type":              "disabling_accident",
		"occurred_at":       time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		"area":              "Plant",
		"description":       "Hand caught in press",
		"medical_rest_days": 5,
		"affected":          map[string]any{"name": "Juan Perez", "national_id": "12345678"},
	}
	resp := worker.multipart("/api/incidents", body, "evidence.pdf", []byte("%PDF-1.4"))
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var created createdResponse
	decode(t, resp, &created)
	gt.A(t, created.Record.EvidenceURLs).Length(1)
	gt.String(t, created.Record.Code).Contains("INC-")
	incidentPath := fmt.Sprintf("/api/incidents/%d", created.Record.ID)

	resp = sup.do(http.MethodPatch, incidentPath+"/status", map[string]any{
		"status":   "under_investigation",
		"findings": map[string]any{"immediate_causes": "guard removed"},
	})
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains("guard removed")

	resp = sup.do(http.MethodPost, incidentPath+"/actions", map[string]any{
		"description":   "Reinstall guard",
		"type":          "corrective",
		"owner_user_id": "u-1",
		"due_date":      time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var action idResponse
	decode(t, resp, &action)
	gt.Value(t, action.Status).Equal("pending")

	resp = worker.do(http.MethodGet, incidentPath+"/actions", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	var actions []idResponse
	decode(t, resp, &actions)
	gt.A(t, actions).Length(1)

	resp = sup.do(http.MethodPatch, fmt.Sprintf("/api/actions/%d/status", action.ID), map[string]any{"status": "completed"})
	gt.Value(t, resp.Code).Equal(http.StatusConflict)

	resp = sup.do(http.MethodPatch, fmt.Sprintf("/api/actions/%d/status", action.ID), map[string]any{
		"status":       "in_progress",
		"evidence_url": "not a url",
	})
	gt.Value(t, resp.Code).Equal(http.StatusUnprocessableEntity)

	resp = worker.do(http.MethodGet, "/api/incidents/statistics", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains(`"disabling_accident":1`)
}

func TestEPPEndpoints(t *testing.T) {
	ts := newTestServer(t)
	worker := ts.user("worker@example.com", "user")
	sup := ts.user("sup@example.com", "supervisor")

	item := map[string]any{
		"name":            "Safety helmet",
		"type":            "head",
		"lifespan_months": 12,
		"min_stock":       2,
		"stock":           3,
		"unit_cost":       25.5,
	}
	gt.Value(t, worker.do(http.MethodPost, "/api/epp", item).Code).Equal(http.StatusForbidden)

	resp := sup.do(http.MethodPost, "/api/epp", item)
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var created idResponse
	decode(t, resp, &created)

	assign := map[string]any{
		"epp_id":   created.ID,
		"user_id":  "u-1",
		"quantity": 5,
	}
	resp = sup.do(http.MethodPost, "/api/epp/assignments", assign)
	gt.Value(t, resp.Code).Equal(http.StatusConflict)
	gt.String(t, resp.Body.String()).Contains("requested_quantity")

	assign["quantity"] = 2
	resp = sup.do(http.MethodPost, "/api/epp/assignments", assign)
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	gt.String(t, resp.Body.String()).Contains("expires_at")

	resp = worker.do(http.MethodGet, "/api/epp?low_stock=true", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	var low []idResponse
	decode(t, resp, &low)
	gt.A(t, low).Length(1)

	resp = worker.do(http.MethodGet, "/api/epp/inventory-value", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains("25.5")

	resp = sup.do(http.MethodPatch, fmt.Sprintf("/api/epp/%d/stock", created.ID), map[string]any{"delta": 10})
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains(`"stock":11`)

	resp = worker.do(http.MethodGet, "/api/epp/assignments/expiring?days=400", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	var expiring []map[string]any
	decode(t, resp, &expiring)
	gt.A(t, expiring).Length(1)

	resp = worker.do(http.MethodGet, "/api/epp/assignments/expiring?days=-1", nil)
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

	// an explicit expiry replaces the one derived from the lifespan
	resp = sup.do(http.MethodPost, "/api/epp/assignments", map[string]any{
		"epp_id":      created.ID,
		"user_id":     "u-2",
		"quantity":    1,
		"assigned_at": "2030-01-01T00:00:00Z",
		"expires_at":  "2030-03-31T00:00:00Z",
	})
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	gt.String(t, resp.Body.String()).Contains("2030-03-31")

	resp = sup.do(http.MethodPost, "/api/epp/assignments", map[string]any{
		"epp_id":      created.ID,
		"user_id":     "u-2",
		"quantity":    1,
		"assigned_at": "2030-01-01T00:00:00Z",
		"expires_at":  "2029-12-01T00:00:00Z",
	})
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)
}

func TestTrainingAndInspectionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	sup := ts.user("sup@example.com", "supervisor")

	resp := sup.do(http.MethodPost, "/api/trainings", map[string]any{
		"title":          "Working at heights",
		"type":           "job_specific",
		"instructor":     "Ana",
		"scheduled_at":   time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"duration_hours": 4,
		"attendees": []map[string]any{
			{"name": "Juan", "email": "juan@example.com"},
		},
	})
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var training createdResponse
	decode(t, resp, &training)
	trainingPath := fmt.Sprintf("/api/trainings/%d", training.Record.ID)

	resp = sup.do(http.MethodGet, trainingPath+"/attendees", nil)
	var attendees []idResponse
	decode(t, resp, &attendees)
	gt.A(t, attendees).Length(1)

	resp = sup.do(http.MethodPut, trainingPath+"/attendance", map[string]any{
		"records": []map[string]any{{"attendee_id": attendees[0].ID, "attended": true, "score": 25}},
	})
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

	resp = sup.do(http.MethodPut, trainingPath+"/attendance", map[string]any{
		"records": []map[string]any{{"attendee_id": attendees[0].ID, "attended": true, "score": 18}},
	})
	gt.Value(t, resp.Code).Equal(http.StatusOK)

	resp = sup.do(http.MethodPatch, trainingPath+"/status", map[string]any{"status": "rescheduled"})
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

	resp = sup.do(http.MethodPost, "/api/checklists", map[string]any{
		"name":  "Forklift",
		"type":  "equipment",
		"items": []map[string]any{{"question": "Brakes ok?", "critical": true}},
	})
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var checklist idResponse
	decode(t, resp, &checklist)

	resp = sup.do(http.MethodPost, "/api/inspections", map[string]any{
		"checklist_id":      checklist.ID,
		"area":              "Warehouse",
		"scheduled_date":    time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"inspector_user_id": "u-2",
	})
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var inspection idResponse
	decode(t, resp, &inspection)
	inspectionPath := fmt.Sprintf("/api/inspections/%d", inspection.ID)

	gt.Value(t, sup.do(http.MethodPatch, inspectionPath+"/status", map[string]any{"status": "paused"}).Code).
		Equal(http.StatusBadRequest)
	gt.Value(t, sup.do(http.MethodPatch, inspectionPath+"/status", map[string]any{"status": "in_progress"}).Code).
		Equal(http.StatusOK)
	resp = sup.do(http.MethodPatch, inspectionPath+"/status", map[string]any{
		"status":  "completed",
		"answers": []map[string]any{{"item_index": 3, "compliant": false}},
	})
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

	resp = sup.do(http.MethodPatch, inspectionPath+"/status", map[string]any{
		"status":       "completed",
		"observations": "brakes worn",
		"answers":      []map[string]any{{"item_index": 0, "compliant": false}},
	})
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains("brakes worn")
}

func TestDocumentEndpoints(t *testing.T) {
	ts := newTestServer(t)
	sup := ts.user("sup@example.com", "supervisor")

	doc := map[string]any{
		"title":                    "SST Policy",
		"type":                     "policy",
		"version":                  "1.0",
		"issued_at":                time.Now().UTC().Format(time.RFC3339),
		"requires_periodic_review": true,
	}
	resp := sup.do(http.MethodPost, "/api/documents", doc)
	gt.Value(t, resp.Code).Equal(http.StatusUnprocessableEntity)
	gt.String(t, resp.Body.String()).Contains("file_url")

	resp = sup.multipart("/api/documents", doc, "policy.pdf", []byte("%PDF-1.4"))
	gt.Value(t, resp.Code).Equal(http.StatusCreated)
	var created createdResponse
	decode(t, resp, &created)
	gt.String(t, created.Record.FileURL).Contains("https://storage.example.test/")
	gt.Value(t, created.Record.Status).Equal("draft")

	resp = sup.do(http.MethodPatch, fmt.Sprintf("/api/documents/%d/status", created.Record.ID), map[string]any{"status": "published"})
	gt.Value(t, resp.Code).Equal(http.StatusBadRequest)

	resp = sup.do(http.MethodPatch, fmt.Sprintf("/api/documents/%d/status", created.Record.ID), map[string]any{"status": "current"})
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains("approved_by")

	resp = sup.do(http.MethodGet, "/api/documents/review-due", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
}

func TestReportEndpoints(t *testing.T) {
	ts := newTestServer(t)
	worker := ts.user("worker@example.com", "user")
	sup := ts.user("sup@example.com", "supervisor")

	gt.Value(t, worker.do(http.MethodGet, "/api/reports/summary", nil).Code).Equal(http.StatusForbidden)

	resp := sup.do(http.MethodGet, "/api/reports/summary", nil)
	gt.Value(t, resp.Code).Equal(http.StatusOK)
	gt.String(t, resp.Body.String()).Contains("total_risks")

	t.Run("legal report as xlsx", func(t *testing.T) {
		resp := sup.do(http.MethodGet, "/api/reports/legal?format=xlsx&labor_hours=200000", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		gt.Value(t, resp.Header().Get("Content-Type")).
			Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		gt.String(t, resp.Header().Get("Content-Disposition")).Contains(".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
		gt.NoError(t, err).Required()
		gt.A(t, f.GetSheetList()).Has("Statistics")
	})

	t.Run("legal report as pdf", func(t *testing.T) {
		resp := sup.do(http.MethodGet, "/api/reports/legal?format=pdf", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		gt.Value(t, resp.Header().Get("Content-Type")).Equal("application/pdf")
		gt.String(t, resp.Body.String()[:5]).Equal("%PDF-")
	})

	t.Run("indices as json", func(t *testing.T) {
		resp := sup.do(http.MethodGet, "/api/reports/legal?format=json&from=2024-01-01&to=2025-01-01", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		gt.String(t, resp.Body.String()).Contains(`"period_start":"2024-01-01"`)
	})

	t.Run("bad inputs", func(t *testing.T) {
		gt.Value(t, sup.do(http.MethodGet, "/api/reports/legal?format=docx", nil).Code).Equal(http.StatusBadRequest)
		gt.Value(t, sup.do(http.MethodGet, "/api/reports/legal?from=2025-01-01&to=2024-01-01", nil).Code).
			Equal(http.StatusBadRequest)
		gt.Value(t, sup.do(http.MethodGet, "/api/reports/export?kinds=", nil).Code).Equal(http.StatusBadRequest)
		gt.Value(t, sup.do(http.MethodGet, "/api/reports/export?kinds=widgets", nil).Code).Equal(http.StatusBadRequest)
	})

	t.Run("export", func(t *testing.T) {
		resp := sup.do(http.MethodGet, "/api/reports/export?kinds=risk,epp", nil)
		gt.Value(t, resp.Code).Equal(http.StatusOK)
		f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
		gt.NoError(t, err).Required()
		gt.A(t, f.GetSheetList()).Length(2)
	})
}
