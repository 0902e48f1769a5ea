package firestore

import "github.com/m-mizutani/fireconf"

var (
	riskFilters       = filterFields{area: "area", status: "status", typ: "type", user: "owner_user_id", date: "created_at"}
	incidentFilters   = filterFields{area: "area", status: "status", typ: "type", date: "occurred_at"}
	actionFilters     = filterFields{status: "status", typ: "type", parent: "incident_id", user: "owner_user_id", date: "due_date"}
	trainingFilters   = filterFields{status: "status", typ: "type", date: "scheduled_at"}
	inspectionFilters = filterFields{area: "area", status: "status", parent: "checklist_id", user: "inspector_user_id", date: "scheduled_date"}
	assignmentFilters = filterFields{status: "status", parent: "epp_id", user: "user_id", date: "assigned_at"}
	documentFilters   = filterFields{status: "status", typ: "type", date: "issued_at"}
)

// indexedCollections lists the collections whose list queries combine
// equality filters with a range on the date field.
var indexedCollections = []struct {
	name    string
	filters filterFields
}{
	{"risks", riskFilters},
	{"incidents", incidentFilters},
	{"corrective_actions", actionFilters},
	{"trainings", trainingFilters},
	{"inspections", inspectionFilters},
	{"epp_assignments", assignmentFilters},
	{"documents", documentFilters},
}

func (f filterFields) equalityFields() []string {
	var out []string
	for _, name := range []string{f.area, f.status, f.typ, f.parent, f.user} {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// IndexConfig returns the composite indexes needed by list queries: one per
// equality filter paired with the date range, plus status with area where
// both exist.
func IndexConfig(prefix string) *fireconf.Config {
	cfg := &fireconf.Config{}
	for _, c := range indexedCollections {
		var indexes []fireconf.Index
		for _, field := range c.filters.equalityFields() {
			indexes = append(indexes, dateIndex(c.filters.date, field))
		}
		if c.filters.area != "" && c.filters.status != "" {
			indexes = append(indexes, dateIndex(c.filters.date, c.filters.area, c.filters.status))
		}
		cfg.Collections = append(cfg.Collections, fireconf.Collection{
			Name:    withPrefix(prefix, c.name),
			Indexes: indexes,
		})
	}
	return cfg
}

func dateIndex(date string, fields ...string) fireconf.Index {
	var idx fireconf.Index
	for _, f := range fields {
		idx.Fields = append(idx.Fields, fireconf.IndexField{Path: f, Order: fireconf.OrderAscending})
	}
	idx.Fields = append(idx.Fields, fireconf.IndexField{Path: date, Order: fireconf.OrderAscending})
	return idx
}
