package documents

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type HTTPHandler struct {
	Service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{Service: service}
}

// Upload handles POST /api/missions/{missionID}/documents as a multipart
// form with a "file" part and an optional "kind" field.
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	missionID, err := missionIDFromPath(r)
	if err != nil {
		http.Error(w, `{"error": "invalid mission id"}`, http.StatusBadRequest)
		return
	}

	// Max memory 32MB
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, `{"error": "failed to parse form"}`, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `{"error": "file is required"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	kind := DocumentKind(r.FormValue("kind"))
	doc, err := h.Service.Upload(r.Context(), missionID, header.Filename, kind, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		slog.ErrorContext(r.Context(), "Document upload failed", "mission_id", missionID, "error", err)
		http.Error(w, `{"error": "upload failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

// List handles GET /api/missions/{missionID}/documents.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	missionID, err := missionIDFromPath(r)
	if err != nil {
		http.Error(w, `{"error": "invalid mission id"}`, http.StatusBadRequest)
		return
	}

	docs, err := h.Service.List(r.Context(), missionID)
	if err != nil {
		http.Error(w, `{"error": "failed to list documents"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// Download handles GET /api/documents/{documentID}/content.
func (h *HTTPHandler) Download(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(r.PathValue("documentID"))
	if err != nil {
		http.Error(w, `{"error": "invalid document id"}`, http.StatusBadRequest)
		return
	}

	reader, contentType, err := h.Service.Download(r.Context(), publicID)
	if err != nil {
		http.Error(w, `{"error": "document not found"}`, http.StatusNotFound)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, reader)
}

// Delete handles DELETE /api/documents/{documentID}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(r.PathValue("documentID"))
	if err != nil {
		http.Error(w, `{"error": "invalid document id"}`, http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), publicID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			http.Error(w, `{"error": "document not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "failed to delete document"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func missionIDFromPath(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("missionID"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
