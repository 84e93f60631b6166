package registrations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2706msjk-ui/gilmo/config"
)

func testRules() config.EventConfig {
	return config.EventConfig{
		MaleYearMin:   1993,
		MaleYearMax:   2006,
		FemaleYearMin: 1995,
		FemaleYearMax: 2008,
	}
}

func validSubmission() Submission {
	return Submission{
		Name:        "Kim",
		Gender:      "male",
		BirthDate:   "1999-05-01",
		Phone:       "010-1111-2222",
		InstagramID: "@kim",
		Height:      "175",
		Weight:      "70",
		HasBody:     true,
		HasFace:     true,
	}
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	errs := NewValidator(testRules()).Validate(validSubmission())
	assert.Empty(t, errs)
}

func TestValidateBirthYearWindows(t *testing.T) {
	testCases := []struct {
		name      string
		gender    string
		birthDate string
		wantErr   bool
	}{
		{name: "male lower bound", gender: "male", birthDate: "1993-01-01", wantErr: false},
		{name: "male upper bound", gender: "male", birthDate: "2006-12-31", wantErr: false},
		{name: "male too old", gender: "male", birthDate: "1992-12-31", wantErr: true},
		{name: "male too young", gender: "male", birthDate: "2007-01-01", wantErr: true},
		{name: "female lower bound", gender: "female", birthDate: "1995-01-01", wantErr: false},
		{name: "female too old", gender: "female", birthDate: "1994-06-15", wantErr: true},
		{name: "female too young", gender: "female", birthDate: "2009-01-01", wantErr: true},
	}

	v := NewValidator(testRules())
	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Gender = tC.gender
			sub.BirthDate = tC.birthDate
			errs := v.Validate(sub)
			if tC.wantErr {
				assert.Contains(t, errs, "birth_date")
			} else {
				assert.NotContains(t, errs, "birth_date")
			}
		})
	}
}

func TestValidateFieldKeyedMessages(t *testing.T) {
	v := NewValidator(testRules())
	errs := v.Validate(Submission{})

	for _, field := range []string{"name", "gender", "birth_date", "phone", "instagram_id", "height", "weight", "body_photo", "face_photo"} {
		assert.Contains(t, errs, field)
		assert.NotEmpty(t, errs[field])
	}
}

func TestValidatePhoneDigitCount(t *testing.T) {
	v := NewValidator(testRules())

	sub := validSubmission()
	sub.Phone = "010-123" // 6 digits
	assert.Contains(t, v.Validate(sub), "phone")

	sub.Phone = "010-1234-5678" // 11 digits despite formatting
	assert.NotContains(t, v.Validate(sub), "phone")
}

func TestValidateInstagramSentinelFlag(t *testing.T) {
	v := NewValidator(testRules())

	sub := validSubmission()
	sub.InstagramID = ""
	assert.Contains(t, v.Validate(sub), "instagram_id")

	sub.NoInstagram = true
	assert.NotContains(t, v.Validate(sub), "instagram_id")
}

func TestValidateRejectsUnknownGender(t *testing.T) {
	v := NewValidator(testRules())
	sub := validSubmission()
	sub.Gender = "other"
	assert.Contains(t, v.Validate(sub), "gender")
}
