package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup"
)

type handler struct {
	opts      tablegroup.Options
	maxUpload int64
	logger    *slog.Logger
}

// POST /extract
// Accepts a multipart upload in field "file" and answers with the workbook.
func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				"upload exceeds "+strconv.FormatInt(tooLarge.Limit>>20, 10)+" MB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	// Sanitise filename to prevent path traversal.
	safeName := filepath.Base(header.Filename)

	opts := h.opts
	opts.Logger = h.logger.With("request_id", requestID(r.Context()))

	res, err := tablegroup.Process(file, safeName, opts)
	switch {
	case errors.Is(err, tablegroup.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	case errors.Is(err, tablegroup.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		opts.Logger.Error("extraction failed", "error", err)
		return
	}

	if res.Status == tablegroup.StatusNoTables {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  string(res.Status),
			"message": "No valid tables found.",
		})
		return
	}

	w.Header().Set("Content-Type", res.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("X-Table-Groups", strconv.Itoa(res.Groups))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		opts.Logger.Warn("writing response", "error", err)
	}
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
