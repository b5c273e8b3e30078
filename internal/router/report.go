package router

import (
	"fmt"
	"net/http"

	"github.com/GustavoCaso/finbot/internal/export"
	"github.com/GustavoCaso/finbot/internal/filter"
)

type reportHandler struct {
	router *router
}

func (h *reportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/filter", h.router.requireSession(h.getFilter))
	mux.Handle("PATCH /api/filter", h.router.requireSession(h.patchFilter))
	mux.Handle("GET /api/summary", h.router.requireSession(h.summary))
	mux.Handle("GET /api/charts/categories", h.router.requireSession(h.categoryChart))
	mux.Handle("GET /api/charts/monthly", h.router.requireSession(h.monthlyChart))
	mux.Handle("GET /api/export", h.router.requireSession(h.export))
}

func (h *reportHandler) getFilter(w http.ResponseWriter, _ *http.Request) {
	h.router.writeJSON(w, http.StatusOK, h.router.store.State().Filter)
}

func (h *reportHandler) patchFilter(w http.ResponseWriter, r *http.Request) {
	var patch filter.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.router.writeError(w, err)
		return
	}

	f, err := h.router.store.SetFilter(patch)
	if err != nil {
		h.router.writeError(w, err)
		return
	}

	h.router.writeJSON(w, http.StatusOK, f)
}

func (h *reportHandler) summary(w http.ResponseWriter, r *http.Request) {
	state, err := h.router.view(r)
	if err != nil {
		h.router.writeError(w, err)
		return
	}

	h.router.writeJSON(w, http.StatusOK, state.Summary(h.router.store.Now()))
}

func (h *reportHandler) categoryChart(w http.ResponseWriter, r *http.Request) {
	state, err := h.router.view(r)
	if err != nil {
		h.router.writeError(w, err)
		return
	}

	h.router.writeJSON(w, http.StatusOK, state.CategoryChart(h.router.store.Now()))
}

func (h *reportHandler) monthlyChart(w http.ResponseWriter, r *http.Request) {
	state, err := h.router.view(r)
	if err != nil {
		h.router.writeError(w, err)
		return
	}

	h.router.writeJSON(w, http.StatusOK, state.MonthlyChart(h.router.store.Now()))
}

func (h *reportHandler) export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.router.writeError(w, badRequest(err))
		return
	}

	state, err := h.router.view(r)
	if err != nil {
		h.router.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transactions.%s", format))

	if err = export.Write(w, format, state.Filtered(h.router.store.Now()), state.Categories); err != nil {
		h.router.logger.Error("Failed to export transactions", "error", err.Error())
	}
}
