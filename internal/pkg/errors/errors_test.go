package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Validation("please enter a stop name first")
	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.False(t, stderrors.Is(err, ErrCoordinate))

	wrapped := fmt.Errorf("add stop: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrValidation))
}

func TestServerCarriesStatus(t *testing.T) {
	err := Server(http.StatusBadGateway)
	assert.True(t, stderrors.Is(err, ErrServer))
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
}

func TestStorageUnwraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Storage("could not write route collection", cause)
	assert.True(t, stderrors.Is(err, ErrStorage))
	assert.True(t, stderrors.Is(err, cause))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(ErrInsufficientStops))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(Authentication("session rejected")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(stderrors.New("plain")))
}
