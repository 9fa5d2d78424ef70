package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	Day       string `validate:"required,weekday"`
	StartTime string `validate:"required,clock"`
	Date      string `validate:"required,date"`
}

func TestValidate_CustomTags(t *testing.T) {
	assert.Nil(t, Validate(slotInput{Day: "Monday", StartTime: "09:00", Date: "2026-10-19"}))

	errs := Validate(slotInput{Day: "monday", StartTime: "9:00", Date: "19/10/2026"})
	require.Len(t, errs, 3)
	assert.Equal(t, "weekday", errs["slotInput.Day"])
	assert.Equal(t, "clock", errs["slotInput.StartTime"])
	assert.Equal(t, "date", errs["slotInput.Date"])
}

func TestRegisterGinTags(t *testing.T) {
	assert.NoError(t, RegisterGinTags())
}
