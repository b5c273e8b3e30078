package router

import (
	"net/http"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
)

type categoryHandler struct {
	router *router
}

func (c *categoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/categories", c.router.requireSession(c.list))
	mux.Handle("POST /api/categories", c.router.requireSession(c.create))
	mux.Handle("PATCH /api/categories/{id}", c.router.requireSession(c.update))
	mux.Handle("DELETE /api/categories/{id}", c.router.requireSession(c.delete))
}

func (c *categoryHandler) list(w http.ResponseWriter, _ *http.Request) {
	c.router.writeJSON(w, http.StatusOK, c.router.store.State().Categories)
}

func (c *categoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var input store.CategoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		c.router.writeError(w, err)
		return
	}

	created, err := c.router.store.AddCategory(input)
	if err != nil {
		c.router.writeError(w, err)
		return
	}

	c.router.writeJSON(w, http.StatusCreated, created)
}

func (c *categoryHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch ledger.CategoryPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		c.router.writeError(w, err)
		return
	}

	updated, err := c.router.store.UpdateCategory(r.PathValue("id"), patch)
	if err != nil {
		c.router.writeError(w, err)
		return
	}

	c.router.writeJSON(w, http.StatusOK, updated)
}

func (c *categoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.router.store.DeleteCategory(r.PathValue("id")); err != nil {
		c.router.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
