package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid date", InvalidDate("from"), http.StatusBadRequest},
		{"wrapped input", fmt.Errorf("get logs: %w", InvalidLimit()), http.StatusBadRequest},
		{"not found", NotFound("507f1f77bcf86cd799439011"), http.StatusNotFound},
		{"store", Store("aggregate logs", errors.New("connection refused")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestInvalidDate_NamesField(t *testing.T) {
	err := InvalidDate("to")

	var ce *ClientInputError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "to", ce.Field)
	assert.Equal(t, `Invalid "to" date`, ce.Error())
}

func TestStore_UnwrapsAndKeepsNil(t *testing.T) {
	assert.NoError(t, Store("insert user", nil))

	cause := errors.New("server selection timeout")
	err := Store("insert user", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert user: server selection timeout", err.Error())
	assert.False(t, IsClientInput(err))
	assert.False(t, IsNotFound(err))
}

func TestMessage_HidesInfrastructureDetail(t *testing.T) {
	assert.Equal(t, `Invalid "limit"`, Message(InvalidLimit()))
	assert.Equal(t, "User not found", Message(NotFound("abc")))
	assert.Equal(t, "Internal server error", Message(Store("aggregate logs", errors.New("secret host"))))
}
