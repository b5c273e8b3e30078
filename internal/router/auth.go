package router

import (
	"net/http"
	"time"

	"github.com/GustavoCaso/finbot/internal/auth"
)

const sessionCookieName = "session_id"

type authHandler struct {
	router *router
}

func (a *authHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", a.login)
	mux.HandleFunc("POST /api/auth/register", a.register)
	mux.HandleFunc("POST /api/auth/logout", a.logout)
	mux.Handle("GET /api/auth/me", a.router.requireSession(a.me))
	mux.Handle("PATCH /api/auth/me", a.router.requireSession(a.updateProfile))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.router.writeError(w, err)
		return
	}

	user, err := a.router.auth.Login(req.Email, req.Password)
	if err != nil {
		a.router.writeError(w, err)
		return
	}

	a.startSession(w, user)
	a.router.writeJSON(w, http.StatusOK, user)
}

func (a *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.router.writeError(w, err)
		return
	}

	user, err := a.router.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		a.router.writeError(w, err)
		return
	}

	a.startSession(w, user)
	a.router.writeJSON(w, http.StatusCreated, user)
}

func (a *authHandler) startSession(w http.ResponseWriter, user auth.User) {
	session := a.router.sessions.Create(user.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})

	a.router.logger.Info("Session started", "user_id", user.ID)
}

func (a *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		a.router.sessions.Delete(cookie.Value)
	}

	// Clear cookie
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (a *authHandler) me(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	user, err := a.router.auth.User(session.UserID)
	if err != nil {
		a.router.writeError(w, err)
		return
	}

	a.router.writeJSON(w, http.StatusOK, user)
}

func (a *authHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var patch auth.ProfilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		a.router.writeError(w, err)
		return
	}

	user, err := a.router.auth.UpdateProfile(session.UserID, patch)
	if err != nil {
		a.router.writeError(w, err)
		return
	}

	a.router.writeJSON(w, http.StatusOK, user)
}
