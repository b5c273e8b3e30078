package router

import (
	"errors"
	"fmt"
	"net/http"

	importer "github.com/GustavoCaso/finbot/internal/import"
)

const (
	maxMemory = 32 << 20 // 32MB
)

type importHandler struct {
	router *router
}

func (h *importHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/import", h.router.requireSession(h.importFile))
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *importHandler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMemory)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.router.writeError(w, badRequest(fmt.Errorf("error parsing form: %w", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = errors.New("no file submitted")
		}
		h.router.writeError(w, badRequest(err))
		return
	}
	defer file.Close()

	h.router.logger.Info("Importing file", "name", header.Filename, "size", header.Size)

	info := importer.Import(header.Filename, file, h.router.store)
	if info.Error != nil {
		h.router.writeError(w, badRequest(info.Error))
		return
	}

	h.router.writeJSON(w, http.StatusOK, importResponse{Imported: info.TotalImports})
}
