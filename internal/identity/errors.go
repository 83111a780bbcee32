package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a failed Identity Toolkit call. Code follows the Firebase client SDK
// convention (auth/user-not-found, auth/wrong-password, ...).
type Error struct {
	HTTPStatus int
	Code       string
	// Reason is the raw backend message, e.g. EMAIL_NOT_FOUND.
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Code, e.Reason)
}

var reasonCodes = map[string]string{
	"EMAIL_NOT_FOUND":                  "auth/user-not-found",
	"INVALID_PASSWORD":                 "auth/wrong-password",
	"INVALID_LOGIN_CREDENTIALS":        "auth/invalid-credential",
	"INVALID_IDP_RESPONSE":             "auth/invalid-credential",
	"USER_DISABLED":                    "auth/user-disabled",
	"TOO_MANY_ATTEMPTS_TRY_LATER":      "auth/too-many-requests",
	"INVALID_EMAIL":                    "auth/invalid-email",
	"MISSING_EMAIL":                    "auth/missing-email",
	"MISSING_PASSWORD":                 "auth/missing-password",
	"INVALID_OOB_CODE":                 "auth/invalid-action-code",
	"EXPIRED_OOB_CODE":                 "auth/expired-action-code",
	"OPERATION_NOT_ALLOWED":            "auth/operation-not-allowed",
	"INVALID_CONTINUE_URI":             "auth/invalid-continue-uri",
	"UNAUTHORIZED_DOMAIN":              "auth/unauthorized-continue-uri",
	"FEDERATED_USER_ID_ALREADY_LINKED": "auth/credential-already-in-use",
	"API_KEY_INVALID":                  "auth/invalid-api-key",
}

// newError builds an Error from the backend message. Messages may carry a
// human-readable suffix ("TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account ...").
func newError(status int, message string) *Error {
	reason := strings.TrimSpace(message)
	if i := strings.Index(reason, " : "); i >= 0 {
		reason = strings.TrimSpace(reason[:i])
	}
	code, ok := reasonCodes[reason]
	if !ok {
		code = "auth/internal-error"
	}
	return &Error{HTTPStatus: status, Code: code, Reason: reason}
}

// ErrorCode returns the auth/* code carried by err, or auth/internal-error.
func ErrorCode(err error) string {
	var idErr *Error
	if errors.As(err, &idErr) {
		return idErr.Code
	}
	return "auth/internal-error"
}
