package model

import (
	"time"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// daysPerLifespanMonth converts a lifespan in months to a duration
const daysPerLifespanMonth = 30

// EPP is a catalog item of personal protective equipment
type EPP struct {
	ID             int64
	Code           string
	Name           string
	Description    string
	Type           types.EPPType
	Brand          string
	Model          string
	Certification  string
	LifespanMonths int
	MinStock       int
	Stock          int
	UnitCost       float64
	Supplier       string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (x *EPP) Fields() Fields {
	return Fields{
		"name":            x.Name,
		"type":            x.Type,
		"lifespan_months": x.LifespanMonths,
		"min_stock":       x.MinStock,
		"stock":           x.Stock,
		"unit_cost":       x.UnitCost,
	}
}

// LowStock is true when stock has reached the minimum
func (x *EPP) LowStock() bool {
	return x.Stock <= x.MinStock
}

// ExpiryFrom returns when equipment handed out at assignedAt wears out
func (x *EPP) ExpiryFrom(assignedAt time.Time) time.Time {
	return assignedAt.AddDate(0, 0, x.LifespanMonths*daysPerLifespanMonth)
}

// InventoryValue sums stock times unit cost over the catalog
func InventoryValue(items []*EPP) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Stock) * item.UnitCost
	}
	return total
}

// EPPAssignment records equipment handed to a worker
type EPPAssignment struct {
	ID          int64
	EPPID       int64
	UserID      string
	Quantity    int
	AssignedAt  time.Time
	ExpiresAt   *time.Time
	Status      types.AssignmentStatus
	Notes       string
	DeliveredBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields returns the validator view. availableStock is the current stock of
// the catalog item the assignment draws from.
func (x *EPPAssignment) Fields(availableStock int) Fields {
	return Fields{
		"epp_id":             x.EPPID,
		"user_id":            x.UserID,
		"requested_quantity": x.Quantity,
		"assigned_at":        x.AssignedAt,
		"available_stock":    availableStock,
	}
}

// DaysUntilExpiry returns whole days left before expiry; ok is false when
// the assignment has no expiry date.
func (x *EPPAssignment) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if x.ExpiresAt == nil {
		return 0, false
	}
	return daysBetween(now, *x.ExpiresAt), true
}

// ExpiryAlertLevel grades how close an assignment is to expiry
type ExpiryAlertLevel string

const (
	ExpiryAlertNone     ExpiryAlertLevel = ""
	ExpiryAlertUpcoming ExpiryAlertLevel = "upcoming"
	ExpiryAlertSoon     ExpiryAlertLevel = "soon"
	ExpiryAlertUrgent   ExpiryAlertLevel = "urgent"
	ExpiryAlertExpired  ExpiryAlertLevel = "expired"
)

// ExpiryAlertLevelFor maps days left to an alert level
func ExpiryAlertLevelFor(daysLeft int) ExpiryAlertLevel {
	switch {
	case daysLeft <= 0:
		return ExpiryAlertExpired
	case daysLeft <= 7:
		return ExpiryAlertUrgent
	case daysLeft <= 15:
		return ExpiryAlertSoon
	case daysLeft <= 30:
		return ExpiryAlertUpcoming
	default:
		return ExpiryAlertNone
	}
}

// daysBetween counts calendar days from a to b in UTC
func daysBetween(a, b time.Time) int {
	a = truncateDay(a)
	b = truncateDay(b)
	return int(b.Sub(a).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
