package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindMatching(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list cart: %w", Transport("list cart", cause))

	assert.True(t, errors.Is(err, ErrTransport))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{AuthRequired("login"), http.StatusUnauthorized},
		{Duplicate("dup"), http.StatusConflict},
		{Transport("op", nil), http.StatusBadGateway},
		{&Error{Kind: "other"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
			assert.Equal(t, tt.want, StatusCode(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}

func TestNotificationFor(t *testing.T) {
	fallback := "Something went wrong."

	assert.Equal(t, Notification{SeverityError, "Please select a payment method"},
		NotificationFor(Validation("Please select a payment method"), fallback))
	assert.Equal(t, Notification{SeverityWarning, "Please login first"},
		NotificationFor(AuthRequired("Please login first"), fallback))
	assert.Equal(t, Notification{SeverityInfo, "Item already in cart."},
		NotificationFor(Duplicate("Item already in cart."), fallback))
	assert.Equal(t, Notification{SeverityError, fallback},
		NotificationFor(Transport("create order", errors.New("HTTP 500 Internal Server Error")), fallback))
	assert.Equal(t, Notification{SeverityError, fallback},
		NotificationFor(errors.New("boom"), fallback))
}
