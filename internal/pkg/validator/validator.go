package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Portfolio project category
	validate.RegisterValidation("project_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"all", "web", "branding", "marketing", "strategy", ""}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Analytics event type
	validate.RegisterValidation("event_type", func(fl validator.FieldLevel) bool {
		eventType := fl.Field().String()
		validTypes := []string{"page_view", "grant_application", "donation", "resource_download", "community_engagement"}
		for _, t := range validTypes {
			if eventType == t {
				return true
			}
		}
		return false
	})

	// AI chat model selector
	validate.RegisterValidation("chat_model", func(fl validator.FieldLevel) bool {
		model := fl.Field().String()
		return model == "claude" || model == "chatgpt"
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "project_category":
			errors[field] = "Invalid category. Must be: all, web, branding, marketing, or strategy"
		case "event_type":
			errors[field] = "Invalid event type"
		case "chat_model":
			errors[field] = "Invalid model. Must be: claude or chatgpt"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
