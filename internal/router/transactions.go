package router

import (
	"net/http"

	"github.com/GustavoCaso/finbot/internal/filter"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
)

type transactionHandler struct {
	router *router
}

func (t *transactionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/transactions", t.router.requireSession(t.list))
	mux.Handle("POST /api/transactions", t.router.requireSession(t.create))
	mux.Handle("PATCH /api/transactions/{id}", t.router.requireSession(t.update))
	mux.Handle("DELETE /api/transactions/{id}", t.router.requireSession(t.delete))
}

// view returns the stored state with the request's query parameters applied
// to its filter.
func (router *router) view(r *http.Request) (ledger.State, error) {
	patch, err := filter.ParsePatch(r.URL.Query())
	if err != nil {
		return ledger.State{}, badRequest(err)
	}

	return router.store.View(patch)
}

func (t *transactionHandler) list(w http.ResponseWriter, r *http.Request) {
	state, err := t.router.view(r)
	if err != nil {
		t.router.writeError(w, err)
		return
	}

	t.router.writeJSON(w, http.StatusOK, state.Filtered(t.router.store.Now()))
}

func (t *transactionHandler) create(w http.ResponseWriter, r *http.Request) {
	var input store.TransactionInput
	if err := decodeJSON(w, r, &input); err != nil {
		t.router.writeError(w, err)
		return
	}

	created, err := t.router.store.AddTransaction(input)
	if err != nil {
		t.router.writeError(w, err)
		return
	}

	t.router.writeJSON(w, http.StatusCreated, created)
}

func (t *transactionHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch ledger.TransactionPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		t.router.writeError(w, err)
		return
	}

	updated, err := t.router.store.UpdateTransaction(r.PathValue("id"), patch)
	if err != nil {
		t.router.writeError(w, err)
		return
	}

	t.router.writeJSON(w, http.StatusOK, updated)
}

func (t *transactionHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := t.router.store.DeleteTransaction(r.PathValue("id")); err != nil {
		t.router.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
