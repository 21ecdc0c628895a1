package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Phone  string `json:"phone" validate:"required,e164"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Status string `json:"status" validate:"omitempty,is-job-status"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{Phone: "12345", Rating: 9})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "phone")
	assert.Contains(t, vErr.Errors, "rating")
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{Phone: "+77001234567", Rating: 4, Status: "open"})
	assert.NoError(t, err)
}

func TestJobStatusRule(t *testing.T) {
	v := New()

	err := v.Validate(&samplePayload{Phone: "+77001234567", Rating: 4, Status: "archived"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "status")

	// Emptiness is left to the required tag.
	err = v.Validate(&samplePayload{Phone: "+77001234567", Rating: 4, Status: ""})
	assert.NoError(t, err)
}
