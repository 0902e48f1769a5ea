package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// ResponseTypeYesNo is the only answer type checklist items support
const ResponseTypeYesNo = "yes_no"

// ChecklistItem is one question of a checklist
type ChecklistItem struct {
	Question     string
	ResponseType string
	Critical     bool
}

// Checklist is a reusable inspection template
type Checklist struct {
	ID          int64
	Name        string
	Description string
	Type        string
	Items       []ChecklistItem
	Active      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (x *Checklist) Fields() Fields {
	return Fields{
		"name":  x.Name,
		"type":  x.Type,
		"items": x.Items,
	}
}

// InspectionAnswer is the result recorded for one checklist item
type InspectionAnswer struct {
	ItemIndex int
	Compliant bool
	Comment   string
}

// Inspection is a scheduled walk-through against a checklist
type Inspection struct {
	ID              int64
	Code            string
	ChecklistID     int64
	Area            string
	ScheduledDate   time.Time
	InspectorUserID string
	Status          types.InspectionStatus
	Observations    string
	Answers         []InspectionAnswer
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (x *Inspection) Fields() Fields {
	return Fields{
		"checklist_id":      x.ChecklistID,
		"area":              x.Area,
		"scheduled_date":    x.ScheduledDate,
		"inspector_user_id": x.InspectorUserID,
	}
}

// NonCompliantCritical counts failed answers on critical items
func (x *Inspection) NonCompliantCritical(checklist *Checklist) int {
	n := 0
	for _, a := range x.Answers {
		if a.Compliant || a.ItemIndex < 0 || a.ItemIndex >= len(checklist.Items) {
			continue
		}
		if checklist.Items[a.ItemIndex].Critical {
			n++
		}
	}
	return n
}
