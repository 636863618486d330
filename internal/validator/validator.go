package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/behavioral-assessment/internal/errors"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/scoring"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the service's custom tags registered.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and converts failures into ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Engine exposes the underlying validator, e.g. to install it as gin's binding engine.
func (v *Validator) Engine() *validator.Validate {
	return v.structValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("assessment_kind", validateAssessmentKind)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("answer_map", validateAnswerMap)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateAssessmentKind(fl validator.FieldLevel) bool {
	return scoring.Kind(fl.Field().String()).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleLeader,
		models.RoleClient,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

// validateAnswerMap rejects blank question or option ids.
func validateAnswerMap(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map {
		return false
	}
	iter := field.MapRange()
	for iter.Next() {
		if strings.TrimSpace(iter.Key().String()) == "" || strings.TrimSpace(iter.Value().String()) == "" {
			return false
		}
	}
	return true
}
