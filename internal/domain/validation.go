package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// CampaignDraft is the typed form a brand submits to create a campaign.
type CampaignDraft struct {
	Title        string   `json:"title" validate:"required,max=120"`
	Description  string   `json:"description" validate:"required,max=2000"`
	Budget       int64    `json:"budget" validate:"gt=0"`
	Category     string   `json:"category" validate:"required,max=60"`
	Platforms    []string `json:"platforms" validate:"min=1,dive,required,oneof=Instagram YouTube TikTok Twitter Facebook LinkedIn"`
	Requirements string   `json:"requirements" validate:"max=2000"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location     string   `json:"location" validate:"max=120"`
}

// Normalize trims free text and canonicalizes platform names.
func (d CampaignDraft) Normalize() CampaignDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.Requirements = strings.TrimSpace(d.Requirements)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
	d.Location = strings.TrimSpace(d.Location)
	d.Platforms = CanonicalPlatforms(d.Platforms)
	return d
}

// ValidateCampaignDraft checks a normalized draft and returns its parsed
// campaign window. Failures are FieldErrors.
func ValidateCampaignDraft(d CampaignDraft) (time.Time, time.Time, error) {
	fields := FieldErrors{}
	if err := validateStruct(d); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return time.Time{}, time.Time{}, err
		}
		fields = fe
	}

	start, startErr := time.Parse(DateLayout, d.StartDate)
	end, endErr := time.Parse(DateLayout, d.EndDate)
	if startErr == nil && endErr == nil && start.After(end) {
		fields["end_date"] = "must not be before start_date"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, fields
	}
	return start, end, nil
}

// validateStruct runs the struct tags of v and reports failures as
// FieldErrors keyed by json name.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := FieldErrors{}
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
