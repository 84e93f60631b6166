package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted on a registration.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// InstagramNone is the sentinel stored when the applicant has no handle.
const InstagramNone = "none"

// Registration is one applicant row in the registrations table.
// A row counts as notified only once SMSSent is true and SMSSentAt is set;
// the two always move together.
type Registration struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BirthDate    time.Time `json:"birth_date"`
	Gender       string    `json:"gender"`
	Phone        string    `json:"phone"` // digits only
	InstagramID  string    `json:"instagram_id"`
	Height       string    `json:"height"`
	Weight       string    `json:"weight"`
	BodyPhotoURL string    `json:"body_photo_url"`
	FacePhotoURL string    `json:"face_photo_url"`

	// Optional fields present in later form variants.
	EventDate         string `json:"event_date,omitempty"`
	Location          string `json:"location,omitempty"`
	Job               string `json:"job,omitempty"`
	Charm             string `json:"charm,omitempty"`
	PreferredStyle    string `json:"preferred_style,omitempty"`
	ParticipationType string `json:"participation_type,omitempty"`
	ReferralSource    string `json:"referral_source,omitempty"`

	SMSSent   bool       `json:"sms_sent"`
	SMSSentAt *time.Time `json:"sms_sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
