package validation

import (
	"net/http"
	"testing"

	"places-api/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coords struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
}

type sample struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"min=5"`
	Location    coords `json:"location"`
	Internal    string `json:"-" validate:"max=3"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "Tower", Description: "A tall tower"}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Description: "abc", Location: coords{Lat: 91}, Internal: "toolong"})
	require.Error(t, err)

	httpErr := errs.As(err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, errs.InvalidInputsMessage, httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "title", Error: "is required"},
		{Field: "description", Error: "must be at least 5 characters"},
		{Field: "location.lat", Error: "must be less than or equal to 90"},
		{Field: "Internal", Error: "must not exceed 3 characters"},
	}, httpErr.Errors)
}

func TestStructRejectsNonStruct(t *testing.T) {
	err := Struct("not a struct")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, errs.As(err).Status)
}
