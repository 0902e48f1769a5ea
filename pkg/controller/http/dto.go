package http

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

// Request bodies. Tags only check shape; required fields and catalog values
// are reported by the record validator.

type registerRequest struct {
	Email           string `json:"email" validate:"max=254"`
	FullName        string `json:"full_name" validate:"max=200"`
	JobTitle        string `json:"job_title" validate:"max=200"`
	Area            string `json:"area" validate:"max=200"`
	Phone           string `json:"phone" validate:"max=40"`
	Password        string `json:"password" masq:"secret"`
	PasswordConfirm string `json:"password_confirm" masq:"secret"`
}

func (x *registerRequest) toModel() *model.Registration {
	return &model.Registration{
		Email:           x.Email,
		FullName:        x.FullName,
		JobTitle:        x.JobTitle,
		Area:            x.Area,
		Phone:           x.Phone,
		Password:        x.Password,
		PasswordConfirm: x.PasswordConfirm,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required" masq:"secret"`
}

type riskRequest struct {
	Description     string     `json:"description" validate:"max=4000"`
	Area            string     `json:"area" validate:"max=200"`
	Process         string     `json:"process" validate:"max=200"`
	Type            string     `json:"risk_type"`
	Probability     int        `json:"probability"`
	Severity        int        `json:"severity"`
	ControlMeasures string     `json:"control_measures" validate:"max=4000"`
	OwnerUserID     string     `json:"owner_user_id"`
	ReviewDate      *time.Time `json:"review_date"`
}

func (x *riskRequest) toModel() *model.Risk {
	return &model.Risk{
		Description:     x.Description,
		Area:            x.Area,
		Process:         x.Process,
		Type:            types.RiskType(x.Type),
		Probability:     types.Probability(x.Probability),
		Severity:        types.Severity(x.Severity),
		ControlMeasures: x.ControlMeasures,
		OwnerUserID:     x.OwnerUserID,
		ReviewDate:      x.ReviewDate,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type affectedPersonDTO struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	JobTitle   string `json:"job_title"`
}

type incidentRequest struct {
	Type                  string            `json:"type"`
	OccurredAt            time.Time         `json:"occurred_at"`
	Area                  string            `json:"area" validate:"max=200"`
	Location              string            `json:"location" validate:"max=200"`
	Description           string            `json:"description" validate:"max=4000"`
	Affected              affectedPersonDTO `json:"affected"`
	BodyPart              string            `json:"body_part"`
	InjuryNature          string            `json:"injury_nature"`
	MedicalRestDays       int               `json:"medical_rest_days"`
	Witnesses             string            `json:"witnesses"`
	ImmediateMeasures     string            `json:"immediate_measures"`
	RequiresInvestigation bool              `json:"requires_investigation"`
	ReportedToAuthority   bool              `json:"reported_to_authority"`
	ReportedToAuthorityAt *time.Time        `json:"reported_to_authority_at"`
}

func (x *incidentRequest) toModel() *model.Incident {
	return &model.Incident{
		Type:        types.IncidentType(x.Type),
		OccurredAt:  x.OccurredAt,
		Area:        x.Area,
		Location:    x.Location,
		Description: x.Description,
		Affected: model.AffectedPerson{
			Name:       x.Affected.Name,
			NationalID: x.Affected.NationalID,
			JobTitle:   x.Affected.JobTitle,
		},
		BodyPart:              x.BodyPart,
		InjuryNature:          x.InjuryNature,
		MedicalRestDays:       x.MedicalRestDays,
		Witnesses:             x.Witnesses,
		ImmediateMeasures:     x.ImmediateMeasures,
		RequiresInvestigation: x.RequiresInvestigation,
		ReportedToAuthority:   x.ReportedToAuthority,
		ReportedToAuthorityAt: x.ReportedToAuthorityAt,
	}
}

type incidentStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Findings *struct {
		ImmediateCauses   string `json:"immediate_causes"`
		BasicCauses       string `json:"basic_causes"`
		RootCauseAnalysis string `json:"root_cause_analysis"`
		ImmediateMeasures string `json:"immediate_measures"`
	} `json:"findings"`
}

type actionRequest struct {
	Description string    `json:"description" validate:"max=4000"`
	Type        string    `json:"type"`
	OwnerUserID string    `json:"owner_user_id"`
	DueDate     time.Time `json:"due_date"`
}

type actionStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	EvidenceURL string `json:"evidence_url" validate:"omitempty,url"`
	Notes       string `json:"notes" validate:"max=4000"`
}

type attendeeRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name" validate:"required,max=200"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type trainingRequest struct {
	Title         string            `json:"title" validate:"max=300"`
	Description   string            `json:"description" validate:"max=4000"`
	Type          string            `json:"type"`
	Modality      string            `json:"modality"`
	Instructor    string            `json:"instructor" validate:"max=200"`
	ScheduledAt   time.Time         `json:"scheduled_at"`
	DurationHours float64           `json:"duration_hours"`
	Location      string            `json:"location" validate:"max=200"`
	Attendees     []attendeeRequest `json:"attendees" validate:"dive"`
}

func (x *trainingRequest) toModel() (*model.Training, []*model.Attendee) {
	training := &model.Training{
		Title:         x.Title,
		Description:   x.Description,
		Type:          types.TrainingType(x.Type),
		Modality:      types.Modality(x.Modality),
		Instructor:    x.Instructor,
		ScheduledAt:   x.ScheduledAt,
		DurationHours: x.DurationHours,
		Location:      x.Location,
	}
	attendees := make([]*model.Attendee, len(x.Attendees))
	for i, a := range x.Attendees {
		attendees[i] = &model.Attendee{UserID: a.UserID, Name: a.Name, Email: a.Email}
	}
	return training, attendees
}

type trainingStatusRequest struct {
	Status  string     `json:"status" validate:"required"`
	NewDate *time.Time `json:"new_date"`
}

type attendanceRequest struct {
	Records []struct {
		AttendeeID int64    `json:"attendee_id" validate:"required"`
		Attended   bool     `json:"attended"`
		Score      *float64 `json:"score"`
	} `json:"records" validate:"required,min=1,dive"`
}

type checklistRequest struct {
	Name        string `json:"name" validate:"max=200"`
	Description string `json:"description" validate:"max=4000"`
	Type        string `json:"type"`
	Items       []struct {
		Question     string `json:"question" validate:"required"`
		ResponseType string `json:"response_type"`
		Critical     bool   `json:"critical"`
	} `json:"items" validate:"dive"`
}

func (x *checklistRequest) toModel() *model.Checklist {
	items := make([]model.ChecklistItem, len(x.Items))
	for i, item := range x.Items {
		items[i] = model.ChecklistItem{Question: item.Question, ResponseType: item.ResponseType, Critical: item.Critical}
	}
	return &model.Checklist{
		Name:        x.Name,
		Description: x.Description,
		Type:        x.Type,
		Items:       items,
	}
}

type inspectionRequest struct {
	ChecklistID     int64     `json:"checklist_id"`
	Area            string    `json:"area" validate:"max=200"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	InspectorUserID string    `json:"inspector_user_id"`
}

type inspectionAnswerDTO struct {
	ItemIndex int    `json:"item_index" validate:"min=0"`
	Compliant bool   `json:"compliant"`
	Comment   string `json:"comment"`
}

type inspectionStatusRequest struct {
	Status       string                `json:"status" validate:"required"`
	Observations string                `json:"observations" validate:"max=4000"`
	Answers      []inspectionAnswerDTO `json:"answers" validate:"dive"`
}

type eppRequest struct {
	Code           string  `json:"code" validate:"max=40"`
	Name           string  `json:"name" validate:"max=200"`
	Description    string  `json:"description" validate:"max=4000"`
	Type           string  `json:"type"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Certification  string  `json:"certification"`
	LifespanMonths int     `json:"lifespan_months"`
	MinStock       int     `json:"min_stock"`
	Stock          int     `json:"stock"`
	UnitCost       float64 `json:"unit_cost"`
	Supplier       string  `json:"supplier"`
}

func (x *eppRequest) toModel() *model.EPP {
	return &model.EPP{
		Code:           x.Code,
		Name:           x.Name,
		Description:    x.Description,
		Type:           types.EPPType(x.Type),
		Brand:          x.Brand,
		Model:          x.Model,
		Certification:  x.Certification,
		LifespanMonths: x.LifespanMonths,
		MinStock:       x.MinStock,
		Stock:          x.Stock,
		UnitCost:       x.UnitCost,
		Supplier:       x.Supplier,
	}
}

type stockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type assignmentRequest struct {
	EPPID      int64      `json:"epp_id"`
	UserID     string     `json:"user_id"`
	Quantity   int        `json:"quantity"`
	AssignedAt time.Time  `json:"assigned_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Notes      string     `json:"notes" validate:"max=4000"`
}

type returnRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

type documentRequest struct {
	Title                  string     `json:"title" validate:"max=300"`
	Type                   string     `json:"type"`
	Category               string     `json:"category"`
	Description            string     `json:"description" validate:"max=4000"`
	Version                string     `json:"version" validate:"max=20"`
	FileURL                string     `json:"file_url" validate:"omitempty,url"`
	IssuedAt               time.Time  `json:"issued_at"`
	ValidUntil             *time.Time `json:"valid_until"`
	RequiresPeriodicReview bool       `json:"requires_periodic_review"`
	ReviewDate             *time.Time `json:"review_date"`
	AlertLeadDays          int        `json:"alert_lead_days"`
	ReviewedBy             string     `json:"reviewed_by"`
}

func (x *documentRequest) toModel() *model.Document {
	return &model.Document{
		Title:                  x.Title,
		Type:                   types.DocumentType(x.Type),
		Category:               x.Category,
		Description:            x.Description,
		Version:                x.Version,
		FileURL:                x.FileURL,
		IssuedAt:               x.IssuedAt,
		ValidUntil:             x.ValidUntil,
		RequiresPeriodicReview: x.RequiresPeriodicReview,
		ReviewDate:             x.ReviewDate,
		AlertLeadDays:          x.AlertLeadDays,
		ReviewedBy:             x.ReviewedBy,
	}
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Responses

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	JobTitle  string    `json:"job_title,omitempty"`
	Area      string    `json:"area,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUser(x *model.User) userResponse {
	return userResponse{
		ID:        x.ID,
		Email:     x.Email,
		FullName:  x.FullName,
		JobTitle:  x.JobTitle,
		Area:      x.Area,
		Phone:     x.Phone,
		Role:      x.Role.String(),
		Active:    x.Active,
		CreatedAt: x.CreatedAt,
	}
}

type riskResponse struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	Area            string     `json:"area"`
	Process         string     `json:"process,omitempty"`
	Type            string     `json:"risk_type"`
	Probability     int        `json:"probability"`
	Severity        int        `json:"severity"`
	Score           int        `json:"score"`
	Band            string     `json:"band"`
	ControlMeasures string     `json:"control_measures,omitempty"`
	OwnerUserID     string     `json:"owner_user_id,omitempty"`
	Status          string     `json:"status"`
	ReviewDate      *time.Time `json:"review_date,omitempty"`
	CreatedBy       string     `json:"created_by"`
	EvidenceURLs    []string   `json:"evidence_urls"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toRisk(x *model.Risk) riskResponse {
	return riskResponse{
		ID:              x.ID,
		Code:            x.Code,
		Description:     x.Description,
		Area:            x.Area,
		Process:         x.Process,
		Type:            string(x.Type),
		Probability:     int(x.Probability),
		Severity:        int(x.Severity),
		Score:           x.Score,
		Band:            string(x.Band),
		ControlMeasures: x.ControlMeasures,
		OwnerUserID:     x.OwnerUserID,
		Status:          string(x.Status),
		ReviewDate:      x.ReviewDate,
		CreatedBy:       x.CreatedBy,
		EvidenceURLs:    nonNil(x.EvidenceURLs),
		CreatedAt:       x.CreatedAt,
		UpdatedAt:       x.UpdatedAt,
	}
}

type matrixCellResponse struct {
	Probability int    `json:"probability"`
	Severity    int    `json:"severity"`
	Score       int    `json:"score"`
	Band        string `json:"band"`
	Risks       int    `json:"risks"`
}

func toMatrix(rows [][]usecase.MatrixCount) [][]matrixCellResponse {
	out := make([][]matrixCellResponse, len(rows))
	for i, row := range rows {
		out[i] = convertAll(row, func(c usecase.MatrixCount) matrixCellResponse {
			return matrixCellResponse{
				Probability: int(c.Probability),
				Severity:    int(c.Severity),
				Score:       c.Score,
				Band:        string(c.Band),
				Risks:       c.Risks,
			}
		})
	}
	return out
}

type dashboardResponse struct {
	Total    int            `json:"total"`
	ByBand   map[string]int `json:"by_band"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

type incidentResponse struct {
	ID                    int64             `json:"id"`
	Code                  string            `json:"code"`
	Type                  string            `json:"type"`
	OccurredAt            time.Time         `json:"occurred_at"`
	Area                  string            `json:"area"`
	Location              string            `json:"location,omitempty"`
	Description           string            `json:"description"`
	Affected              affectedPersonDTO `json:"affected"`
	BodyPart              string            `json:"body_part,omitempty"`
	InjuryNature          string            `json:"injury_nature,omitempty"`
	MedicalRestDays       int               `json:"medical_rest_days"`
	Witnesses             string            `json:"witnesses,omitempty"`
	ImmediateCauses       string            `json:"immediate_causes,omitempty"`
	BasicCauses           string            `json:"basic_causes,omitempty"`
	RootCauseAnalysis     string            `json:"root_cause_analysis,omitempty"`
	ImmediateMeasures     string            `json:"immediate_measures,omitempty"`
	RequiresInvestigation bool              `json:"requires_investigation"`
	EvidenceURLs          []string          `json:"evidence_urls"`
	ReportedToAuthority   bool              `json:"reported_to_authority"`
	ReportedToAuthorityAt *time.Time        `json:"reported_to_authority_at,omitempty"`
	ReportedBy            string            `json:"reported_by"`
	Status                string            `json:"status"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func toIncident(x *model.Incident) incidentResponse {
	return incidentResponse{
		ID:          x.ID,
		Code:        x.Code,
		Type:        string(x.Type),
		OccurredAt:  x.OccurredAt,
		Area:        x.Area,
		Location:    x.Location,
		Description: x.Description,
		Affected: affectedPersonDTO{
			Name:       x.Affected.Name,
			NationalID: x.Affected.NationalID,
			JobTitle:   x.Affected.JobTitle,
		},
		BodyPart:              x.BodyPart,
		InjuryNature:          x.InjuryNature,
		MedicalRestDays:       x.MedicalRestDays,
		Witnesses:             x.Witnesses,
		ImmediateCauses:       x.ImmediateCauses,
		BasicCauses:           x.BasicCauses,
		RootCauseAnalysis:     x.RootCauseAnalysis,
		ImmediateMeasures:     x.ImmediateMeasures,
		RequiresInvestigation: x.RequiresInvestigation,
		EvidenceURLs:          nonNil(x.EvidenceURLs),
		ReportedToAuthority:   x.ReportedToAuthority,
		ReportedToAuthorityAt: x.ReportedToAuthorityAt,
		ReportedBy:            x.ReportedBy,
		Status:                string(x.Status),
		CreatedAt:             x.CreatedAt,
		UpdatedAt:             x.UpdatedAt,
	}
}

type actionResponse struct {
	ID            int64      `json:"id"`
	IncidentID    int64      `json:"incident_id"`
	Description   string     `json:"description"`
	Type          string     `json:"type"`
	OwnerUserID   string     `json:"owner_user_id"`
	DueDate       time.Time  `json:"due_date"`
	ImplementedAt *time.Time `json:"implemented_at,omitempty"`
	Status        string     `json:"status"`
	EvidenceURL   string     `json:"evidence_url,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toAction(x *model.CorrectiveAction) actionResponse {
	return actionResponse{
		ID:            x.ID,
		IncidentID:    x.IncidentID,
		Description:   x.Description,
		Type:          string(x.Type),
		OwnerUserID:   x.OwnerUserID,
		DueDate:       x.DueDate,
		ImplementedAt: x.ImplementedAt,
		Status:        string(x.Status),
		EvidenceURL:   x.EvidenceURL,
		Notes:         x.Notes,
		CreatedAt:     x.CreatedAt,
	}
}

type monthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

func toMonthCounts(x []model.MonthCount) []monthCountResponse {
	return convertAll(x, func(m model.MonthCount) monthCountResponse {
		return monthCountResponse{Month: m.Month, Count: m.Count}
	})
}

type incidentStatisticsResponse struct {
	Total   int                  `json:"total"`
	ByType  map[string]int       `json:"by_type"`
	ByArea  map[string]int       `json:"by_area"`
	ByMonth []monthCountResponse `json:"by_month"`
}

type trainingResponse struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Modality      string    `json:"modality"`
	Instructor    string    `json:"instructor"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	DurationHours float64   `json:"duration_hours"`
	Location      string    `json:"location,omitempty"`
	Status        string    `json:"status"`
	MaterialURL   string    `json:"material_url,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func toTraining(x *model.Training) trainingResponse {
	return trainingResponse{
		ID:            x.ID,
		Code:          x.Code,
		Title:         x.Title,
		Description:   x.Description,
		Type:          string(x.Type),
		Modality:      string(x.Modality),
		Instructor:    x.Instructor,
		ScheduledAt:   x.ScheduledAt,
		DurationHours: x.DurationHours,
		Location:      x.Location,
		Status:        string(x.Status),
		MaterialURL:   x.MaterialURL,
		CreatedBy:     x.CreatedBy,
		CreatedAt:     x.CreatedAt,
	}
}

type attendeeResponse struct {
	ID         int64    `json:"id"`
	TrainingID int64    `json:"training_id"`
	UserID     string   `json:"user_id,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email,omitempty"`
	Attended   bool     `json:"attended"`
	Score      *float64 `json:"score"`
}

func toAttendee(x *model.Attendee) attendeeResponse {
	return attendeeResponse{
		ID:         x.ID,
		TrainingID: x.TrainingID,
		UserID:     x.UserID,
		Name:       x.Name,
		Email:      x.Email,
		Attended:   x.Attended,
		Score:      x.Score,
	}
}

type trainingStatisticsResponse struct {
	Total          int            `json:"total"`
	ByType         map[string]int `json:"by_type"`
	ByStatus       map[string]int `json:"by_status"`
	TotalHours     float64        `json:"total_hours"`
	AttendanceRate float64        `json:"attendance_rate"`
}

type checklistItemDTO struct {
	Question     string `json:"question"`
	ResponseType string `json:"response_type"`
	Critical     bool   `json:"critical"`
}

type checklistResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type"`
	Items       []checklistItemDTO `json:"items"`
	Active      bool               `json:"active"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toChecklist(x *model.Checklist) checklistResponse {
	return checklistResponse{
		ID:          x.ID,
		Name:        x.Name,
		Description: x.Description,
		Type:        x.Type,
		Items: convertAll(x.Items, func(i model.ChecklistItem) checklistItemDTO {
			return checklistItemDTO{Question: i.Question, ResponseType: i.ResponseType, Critical: i.Critical}
		}),
		Active:    x.Active,
		CreatedBy: x.CreatedBy,
		CreatedAt: x.CreatedAt,
	}
}

type inspectionResponse struct {
	ID              int64                 `json:"id"`
	Code            string                `json:"code"`
	ChecklistID     int64                 `json:"checklist_id"`
	Area            string                `json:"area"`
	ScheduledDate   time.Time             `json:"scheduled_date"`
	InspectorUserID string                `json:"inspector_user_id"`
	Status          string                `json:"status"`
	Observations    string                `json:"observations,omitempty"`
	Answers         []inspectionAnswerDTO `json:"answers"`
	CreatedBy       string                `json:"created_by"`
	CreatedAt       time.Time             `json:"created_at"`
}

func toInspection(x *model.Inspection) inspectionResponse {
	return inspectionResponse{
		ID:              x.ID,
		Code:            x.Code,
		ChecklistID:     x.ChecklistID,
		Area:            x.Area,
		ScheduledDate:   x.ScheduledDate,
		InspectorUserID: x.InspectorUserID,
		Status:          string(x.Status),
		Observations:    x.Observations,
		Answers: convertAll(x.Answers, func(a model.InspectionAnswer) inspectionAnswerDTO {
			return inspectionAnswerDTO{ItemIndex: a.ItemIndex, Compliant: a.Compliant, Comment: a.Comment}
		}),
		CreatedBy: x.CreatedBy,
		CreatedAt: x.CreatedAt,
	}
}

type eppResponse struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Type           string    `json:"type"`
	Brand          string    `json:"brand,omitempty"`
	Model          string    `json:"model,omitempty"`
	Certification  string    `json:"certification,omitempty"`
	LifespanMonths int       `json:"lifespan_months"`
	MinStock       int       `json:"min_stock"`
	Stock          int       `json:"stock"`
	LowStock       bool      `json:"low_stock"`
	UnitCost       float64   `json:"unit_cost"`
	Supplier       string    `json:"supplier,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toEPP(x *model.EPP) eppResponse {
	return eppResponse{
		ID:             x.ID,
		Code:           x.Code,
		Name:           x.Name,
		Description:    x.Description,
		Type:           string(x.Type),
		Brand:          x.Brand,
		Model:          x.Model,
		Certification:  x.Certification,
		LifespanMonths: x.LifespanMonths,
		MinStock:       x.MinStock,
		Stock:          x.Stock,
		LowStock:       x.LowStock(),
		UnitCost:       x.UnitCost,
		Supplier:       x.Supplier,
		Active:         x.Active,
		CreatedAt:      x.CreatedAt,
	}
}

type assignmentResponse struct {
	ID          int64      `json:"id"`
	EPPID       int64      `json:"epp_id"`
	UserID      string     `json:"user_id"`
	Quantity    int        `json:"quantity"`
	AssignedAt  time.Time  `json:"assigned_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	DeliveredBy string     `json:"delivered_by"`
}

func toAssignment(x *model.EPPAssignment) assignmentResponse {
	return assignmentResponse{
		ID:          x.ID,
		EPPID:       x.EPPID,
		UserID:      x.UserID,
		Quantity:    x.Quantity,
		AssignedAt:  x.AssignedAt,
		ExpiresAt:   x.ExpiresAt,
		Status:      string(x.Status),
		Notes:       x.Notes,
		DeliveredBy: x.DeliveredBy,
	}
}

type expiringResponse struct {
	Assignment assignmentResponse `json:"assignment"`
	Item       eppResponse        `json:"item"`
	DaysLeft   int                `json:"days_left"`
	Level      string             `json:"level"`
}

func toExpiring(x *usecase.ExpiringAssignment) expiringResponse {
	return expiringResponse{
		Assignment: toAssignment(x.Assignment),
		Item:       toEPP(x.Item),
		DaysLeft:   x.DaysLeft,
		Level:      string(x.Level),
	}
}

type documentResponse struct {
	ID                     int64      `json:"id"`
	Code                   string     `json:"code"`
	Title                  string     `json:"title"`
	Type                   string     `json:"type"`
	Category               string     `json:"category,omitempty"`
	Description            string     `json:"description,omitempty"`
	Version                string     `json:"version"`
	FileURL                string     `json:"file_url"`
	IssuedAt               time.Time  `json:"issued_at"`
	ValidUntil             *time.Time `json:"valid_until,omitempty"`
	RequiresPeriodicReview bool       `json:"requires_periodic_review"`
	ReviewDate             *time.Time `json:"review_date,omitempty"`
	AlertLeadDays          int        `json:"alert_lead_days"`
	Status                 string     `json:"status"`
	PreparedBy             string     `json:"prepared_by"`
	ReviewedBy             string     `json:"reviewed_by,omitempty"`
	ApprovedBy             string     `json:"approved_by,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

func toDocument(x *model.Document) documentResponse {
	return documentResponse{
		ID:                     x.ID,
		Code:                   x.Code,
		Title:                  x.Title,
		Type:                   string(x.Type),
		Category:               x.Category,
		Description:            x.Description,
		Version:                x.Version,
		FileURL:                x.FileURL,
		IssuedAt:               x.IssuedAt,
		ValidUntil:             x.ValidUntil,
		RequiresPeriodicReview: x.RequiresPeriodicReview,
		ReviewDate:             x.ReviewDate,
		AlertLeadDays:          x.AlertLeadDays,
		Status:                 string(x.Status),
		PreparedBy:             x.PreparedBy,
		ReviewedBy:             x.ReviewedBy,
		ApprovedBy:             x.ApprovedBy,
		CreatedAt:              x.CreatedAt,
	}
}

type indicesResponse struct {
	Frequency float64 `json:"frequency"`
	Severity  float64 `json:"severity"`
	Accident  float64 `json:"accident"`
}

func toIndices(x *model.SafetyIndices) *indicesResponse {
	if x == nil {
		return nil
	}
	return &indicesResponse{Frequency: x.Frequency, Severity: x.Severity, Accident: x.Accident}
}

type summaryResponse struct {
	TotalRisks           int                  `json:"total_risks"`
	CriticalRisks        int                  `json:"critical_risks"`
	Incidents            int                  `json:"incidents"`
	Accidents            int                  `json:"accidents"`
	CompletedTrainings   int                  `json:"completed_trainings"`
	CompletedInspections int                  `json:"completed_inspections"`
	OpenActions          int                  `json:"open_actions"`
	IncidentsByMonth     []monthCountResponse `json:"incidents_by_month"`
	Indices              *indicesResponse     `json:"indices,omitempty"`
}

func toSummary(x *model.ExecutiveSummary) summaryResponse {
	return summaryResponse{
		TotalRisks:           x.TotalRisks,
		CriticalRisks:        x.CriticalRisks,
		Incidents:            x.Incidents,
		Accidents:            x.Accidents,
		CompletedTrainings:   x.CompletedTrainings,
		CompletedInspections: x.CompletedInspections,
		OpenActions:          x.OpenActions,
		IncidentsByMonth:     toMonthCounts(x.IncidentsByMonth),
		Indices:              toIndices(x.Indices),
	}
}

type alertSummaryResponse struct {
	EPPExpiry         int `json:"epp_expiry"`
	DocumentReview    int `json:"document_review"`
	TrainingReminders int `json:"training_reminders"`
	OverdueActions    int `json:"overdue_actions"`
	Failed            int `json:"failed"`
	Total             int `json:"total"`
}

func toAlertSummary(x *usecase.AlertSummary) alertSummaryResponse {
	return alertSummaryResponse{
		EPPExpiry:         x.EPPExpiry,
		DocumentReview:    x.DocumentReview,
		TrainingReminders: x.TrainingReminders,
		OverdueActions:    x.OverdueActions,
		Failed:            x.Failed,
		Total:             x.Total(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toCreated[M any, R any](c *usecase.Created[M], f func(*M) R) createdResponse[R] {
	return createdResponse[R]{Record: f(c.Record), Warnings: c.Warnings}
}
