package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GustavoCaso/finbot/internal/auth"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/store"
)

const maxBodyBytes = 1 << 20

type router struct {
	store    *store.Store
	auth     *auth.Service
	sessions *auth.Sessions
	logger   *logger.Logger
}

// New builds the HTTP API around s. The returned router is exposed for tests.
//
//nolint:revive // We return the private router struct to allow testing some internal functions
func New(s *store.Store, authService *auth.Service, sessions *auth.Sessions, logger *logger.Logger) (http.Handler, *router) {
	r := &router{
		store:    s,
		auth:     authService,
		sessions: sessions,
		logger:   logger,
	}

	mux := &http.ServeMux{}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		r.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authHandler := &authHandler{router: r}
	authHandler.RegisterRoutes(mux)

	transactionHandler := &transactionHandler{router: r}
	transactionHandler.RegisterRoutes(mux)

	categoryHandler := &categoryHandler{router: r}
	categoryHandler.RegisterRoutes(mux)

	reportHandler := &reportHandler{router: r}
	reportHandler.RegisterRoutes(mux)

	importHandler := &importHandler{router: r}
	importHandler.RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = xFrameDenyHeaderMiddleware(handler)
	handler = r.recoverMiddleware(handler)
	handler = loggingMiddleware(logger, handler)

	return handler, r
}

// requestError marks failures caused by the client's input.
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(err error) error {
	return &requestError{err: err}
}

var validationErrors = []error{
	store.ErrInvalidAmount,
	store.ErrInvalidType,
	store.ErrInvalidDate,
	store.ErrUnknownCategory,
	store.ErrCategoryTypeMismatch,
	store.ErrEmptyName,
	store.ErrInvalidCategoryType,
	store.ErrInvalidFilter,
	auth.ErrMissingFields,
}

func statusFor(err error) int {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}

	if errors.Is(err, &ledger.NotFoundError{}) || errors.Is(err, auth.ErrUserNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}

	for _, validationErr := range validationErrors {
		if errors.Is(err, validationErr) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func (router *router) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		router.logger.Error("Failed to encode response", "error", err.Error())
	}
}

func (router *router) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		router.logger.Error("Request failed", "error", message)
		message = "Internal Server Error"
	}

	router.writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return badRequest(fmt.Errorf("invalid request body: %w", err))
	}

	return nil
}
