package apperr

import "errors"

// Severity tags a user-visible notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient message shown to the shopper
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Success builds a success notification
func Success(message string) Notification {
	return Notification{Severity: SeveritySuccess, Message: message}
}

// Info builds an info notification
func Info(message string) Notification {
	return Notification{Severity: SeverityInfo, Message: message}
}

// NotificationFor converts err into the notification a shopper sees.
// Transport failures never leak their cause; fallback is shown instead.
func NotificationFor(err error, fallback string) Notification {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return Notification{Severity: SeverityError, Message: fallback}
	}

	switch appErr.Kind {
	case KindValidation:
		return Notification{Severity: SeverityError, Message: appErr.Message}
	case KindAuth:
		return Notification{Severity: SeverityWarning, Message: appErr.Message}
	case KindDuplicate:
		return Notification{Severity: SeverityInfo, Message: appErr.Message}
	default:
		return Notification{Severity: SeverityError, Message: fallback}
	}
}
