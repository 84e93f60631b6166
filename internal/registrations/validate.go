package registrations

import (
	"fmt"
	"time"

	"github.com/2706msjk-ui/gilmo/config"
	"github.com/2706msjk-ui/gilmo/internal/models"
	"github.com/2706msjk-ui/gilmo/pkg/utils"
)

const minPhoneDigits = 10

// Submission carries the parsed form fields prior to validation.
type Submission struct {
	Name        string
	Gender      string
	BirthDate   string // YYYY-MM-DD
	Phone       string
	InstagramID string
	NoInstagram bool
	Height      string
	Weight      string
	HasBody     bool
	HasFace     bool

	EventDate         string
	Location          string
	Job               string
	Charm             string
	PreferredStyle    string
	ParticipationType string
	ReferralSource    string
}

// Validator applies the client-side form rules server-side: every rule runs
// before any network call, and each invalid field yields one message keyed by
// field name.
type Validator struct {
	rules config.EventConfig
}

// NewValidator creates a validator with the configured eligibility windows.
func NewValidator(rules config.EventConfig) *Validator {
	return &Validator{rules: rules}
}

// Validate checks a submission and returns one message per invalid field.
// An empty map means the submission is valid.
func (v *Validator) Validate(sub Submission) map[string]string {
	errs := make(map[string]string)

	if sub.Name == "" {
		errs["name"] = "name is required"
	}

	switch sub.Gender {
	case models.GenderMale, models.GenderFemale:
	case "":
		errs["gender"] = "gender is required"
	default:
		errs["gender"] = "gender must be male or female"
	}

	if sub.BirthDate == "" {
		errs["birth_date"] = "birth date is required"
	} else if born, err := time.Parse("2006-01-02", sub.BirthDate); err != nil {
		errs["birth_date"] = "birth date must be formatted YYYY-MM-DD"
	} else if _, ok := errs["gender"]; !ok {
		min, max := v.yearWindow(sub.Gender)
		if y := born.Year(); y < min || y > max {
			errs["birth_date"] = fmt.Sprintf("birth year must be between %d and %d", min, max)
		}
	}

	if len(utils.NormalizePhone(sub.Phone)) < minPhoneDigits {
		errs["phone"] = fmt.Sprintf("phone must contain at least %d digits", minPhoneDigits)
	}

	if sub.InstagramID == "" && !sub.NoInstagram {
		errs["instagram_id"] = "instagram id is required (or set the no-instagram flag)"
	}

	if sub.Height == "" {
		errs["height"] = "height is required"
	}
	if sub.Weight == "" {
		errs["weight"] = "weight is required"
	}

	if !sub.HasBody {
		errs["body_photo"] = "body photo is required"
	}
	if !sub.HasFace {
		errs["face_photo"] = "face photo is required"
	}

	return errs
}

func (v *Validator) yearWindow(gender string) (min, max int) {
	if gender == models.GenderFemale {
		return v.rules.FemaleYearMin, v.rules.FemaleYearMax
	}
	return v.rules.MaleYearMin, v.rules.MaleYearMax
}
