package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so messages match what clients sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := models.ParseTimestamp(s)
		return err == nil
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, m := range models.MoodTypes {
			if string(m) == s {
				return true
			}
		}
		return false
	})
	v.RegisterValidation("sentiment", func(fl validator.FieldLevel) bool {
		switch models.Sentiment(fl.Field().String()) {
		case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
			return true
		}
		return false
	})
	return v
}

// Struct validates s against its `validate` tags. The first failure is returned as an
// apperr validation error; nil means s is valid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal(err)
	}
	return apperr.Validation("%s", message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return field + " cannot be empty"
			}
			return field + " must be at least " + fe.Param() + " characters"
		}
		if field == "intensity" {
			return "intensity must be between 1 and 10"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must be at most " + fe.Param() + " characters"
		}
		if field == "intensity" {
			return "intensity must be between 1 and 10"
		}
		return field + " must be at most " + fe.Param()
	case "notblank":
		return field + " cannot be empty"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "mood":
		return field + " must be one of: " + joinMoods()
	case "sentiment":
		return field + " must be one of: positive, negative, neutral"
	case "timestamp":
		return field + " must be an ISO 8601 date or timestamp"
	default:
		return field + " is invalid"
	}
}

// fieldPath drops the top-level struct name from the namespace ("CreateGoalInput.milestones[0].title").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func joinMoods() string {
	names := make([]string, len(models.MoodTypes))
	for i, m := range models.MoodTypes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
