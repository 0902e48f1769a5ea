package model

import "time"

// Code prefixes of the records that carry a human-facing code
const (
	CodePrefixRisk       = "RISK"
	CodePrefixIncident   = "INC"
	CodePrefixTraining   = "TRN"
	CodePrefixInspection = "INSP"
	CodePrefixEPP        = "EPP"
	CodePrefixDocument   = "DOC"
)

// NewCode builds a code such as RISK-20240131154502 from the creation time.
// Codes are for people; the numeric ID identifies the record.
func NewCode(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("20060102150405")
}
