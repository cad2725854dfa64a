package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Platform string `json:"platform" validate:"required,oneof=TWITTER YOUTUBE REDNOTE REDDIT"`
	KolID    string `json:"kol_id" validate:"required"`
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sampleRequest{Platform: "TWITTER", KolID: "elonmusk"}))
}

func TestValidateMapsFailureTo400(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Platform: "MYSPACE", KolID: "tom"})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestValidateRequiredField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Platform: "TWITTER"})
	require.Error(t, err)
}
