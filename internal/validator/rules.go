package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"rapidjobs_backend/internal/models"
)

// registerCustomRules installs domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-request-status", validateRequestStatus)
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is the 'required' tag's business
	}
	switch models.JobStatus(value) {
	case models.JobStatusOpen, models.JobStatusApproved, models.JobStatusCompleted:
		return true
	}
	return false
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RequestStatus(value) {
	case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
		return true
	}
	return false
}
