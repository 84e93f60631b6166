package models

import "github.com/google/uuid"

// EventSetting holds per-event-date cohort capacity counts used to render
// the landing page gauges. Read-only from this system.
type EventSetting struct {
	ID            uuid.UUID `json:"id"`
	EventDate     string    `json:"event_date"`
	MaleCurrent   int       `json:"male_current"`
	MaleMax       int       `json:"male_max"`
	FemaleCurrent int       `json:"female_current"`
	FemaleMax     int       `json:"female_max"`
}
