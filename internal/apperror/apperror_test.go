package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errThing = New(CodeNotFound, "Thing not found", http.StatusNotFound)

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("load: %w", errThing.Wrap(errors.New("404")))
	assert.ErrorIs(t, err, errThing)
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Contains(t, err.Error(), "Thing not found: 404")
}

func TestToHTTP(t *testing.T) {
	h := ToHTTP(errThing.WithDetails(map[string]string{"id": "missing"}))
	assert.Equal(t, http.StatusNotFound, h.Status)
	assert.Equal(t, CodeNotFound, h.Code)
	assert.Equal(t, map[string]string{"id": "missing"}, h.Details)

	h = ToHTTP(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, h.Status)
	assert.Equal(t, "internal server error", h.Message)

	assert.Equal(t, http.StatusOK, ToHTTP(nil).Status)
}
