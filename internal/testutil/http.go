package testutil

import (
	"net/http"
	"testing"

	"github.com/GustavoCaso/finbot/internal/auth"
)

// SetupAuthCookie starts a session for userID and attaches its cookie to req.
func SetupAuthCookie(t *testing.T, sessions *auth.Sessions, req *http.Request, userID, cookieKey string) {
	t.Helper()

	session := sessions.Create(userID)
	cookie := &http.Cookie{
		Name:     cookieKey,
		Value:    session.ID,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
	req.AddCookie(cookie)
}
