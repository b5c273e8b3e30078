package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GustavoCaso/finbot/internal/auth"
)

func TestLoginHandler(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"demo account", `{"email":"demo@example.com","password":"password"}`, http.StatusOK},
		{"wrong password", `{"email":"demo@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"malformed body", `{"email":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			env.handler.ServeHTTP(w, req)

			resp := w.Result()
			if resp.StatusCode != tt.expectedStatus {
				t.Fatalf("Expected status %d; got %d", tt.expectedStatus, resp.StatusCode)
			}

			if tt.expectedStatus != http.StatusOK {
				var body map[string]string
				decodeBody(t, resp, &body)
				if body["error"] == "" {
					t.Error("Expected an error message")
				}
				return
			}

			var sessionCookie *http.Cookie
			for _, cookie := range resp.Cookies() {
				if cookie.Name == sessionCookieName {
					sessionCookie = cookie
				}
			}

			if sessionCookie == nil {
				t.Fatal("Expected session cookie to be set")
			}

			if _, ok := env.sessions.Get(sessionCookie.Value); !ok {
				t.Error("Expected session to be stored")
			}
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"secret"}`))
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status Created; got %v", resp.Status)
	}

	var user auth.User
	decodeBody(t, resp, &user)
	if user.Name != "Ada" || user.ID == "" {
		t.Errorf("Unexpected user %+v", user)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"name":"Ada"}`))
	w = httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status BadRequest for missing fields; got %d", w.Code)
	}
}

func TestLogoutHandler(t *testing.T) {
	env := setupTestRouter(t)

	session := env.sessions.Create("1")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.ID})
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status NoContent; got %d", w.Code)
	}

	if _, ok := env.sessions.Get(session.ID); ok {
		t.Error("Expected session to be deleted")
	}
}

func TestMeHandler(t *testing.T) {
	env := setupTestRouter(t)

	resp := env.do(t, http.MethodGet, "/api/auth/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK; got %v", resp.Status)
	}

	var user auth.User
	decodeBody(t, resp, &user)
	if user.Email != auth.DemoEmail {
		t.Errorf("Expected demo user; got %+v", user)
	}

	resp = env.do(t, http.MethodPatch, "/api/auth/me", map[string]string{"name": "Renamed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK; got %v", resp.Status)
	}

	decodeBody(t, resp, &user)
	if user.Name != "Renamed" || user.Email != auth.DemoEmail {
		t.Errorf("Unexpected profile %+v", user)
	}
}
