package handlers

import (
	"encoding/json"
	"errors"
	"image"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ozarkhomeloans/portal/internal/uploads"
	"github.com/ozarkhomeloans/portal/pkg/models"
)

// UploadMedia handles POST /api/media (multipart, "file" part + optional
// "label" field).
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}

	saved, err := h.uploads.Save(files[0])
	if err != nil {
		if errors.Is(err, uploads.ErrTooLarge) || errors.Is(err, uploads.ErrBadType) {
			jsonError(w, "file: "+err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error storing media upload: %v", err)
		jsonError(w, "failed to store file", http.StatusInternalServerError)
		return
	}

	width, height := imageDimensions(filepath.Join(h.uploads.Dir(), saved.Filename))

	asset := &models.MediaAsset{
		ID:          uuid.New().String(),
		Filename:    saved.Original,
		URL:         saved.URL,
		Label:       r.FormValue("label"),
		Width:       width,
		Height:      height,
		SizeBytes:   saved.Size,
		ContentType: saved.ContentType,
		UploadedAt:  time.Now(),
	}

	if err := h.db.CreateMediaAsset(asset); err != nil {
		log.Printf("Error recording media asset: %v", err)
		_ = h.uploads.Remove(saved.Filename)
		jsonError(w, "failed to record media asset", http.StatusInternalServerError)
		return
	}
	jsonCreated(w, asset)
}

// ListMedia handles GET /api/media?q= — newest first, optional substring
// filter on filename or label.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	assets, err := h.db.ListMediaAssets(r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Error listing media: %v", err)
		jsonError(w, "failed to list media", http.StatusInternalServerError)
		return
	}
	if assets == nil {
		assets = []models.MediaAsset{}
	}
	jsonData(w, assets)
}

// PatchMedia handles PATCH /api/media/{id} (label edit).
func (h *Handler) PatchMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asset, err := h.db.GetMediaAsset(id)
	if err != nil {
		log.Printf("Error getting media asset %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if asset == nil {
		jsonError(w, "media asset not found", http.StatusNotFound)
		return
	}

	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.db.UpdateMediaLabel(id, req.Label); err != nil {
		log.Printf("Error updating media label %s: %v", id, err)
		jsonError(w, "failed to update label", http.StatusInternalServerError)
		return
	}
	asset.Label = req.Label
	jsonData(w, asset)
}

// DeleteMedia handles DELETE /api/media/{id}. The DB row is removed first;
// file removal is best-effort.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asset, err := h.db.GetMediaAsset(id)
	if err != nil {
		log.Printf("Error getting media asset %s: %v", id, err)
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if asset == nil {
		jsonError(w, "media asset not found", http.StatusNotFound)
		return
	}

	if err := h.db.DeleteMediaAsset(id); err != nil {
		log.Printf("Error deleting media asset %s: %v", id, err)
		jsonError(w, "failed to delete media asset", http.StatusInternalServerError)
		return
	}
	if err := h.uploads.Remove(filepath.Base(asset.URL)); err != nil {
		log.Printf("Error removing stored file for %s: %v", id, err)
	}
	jsonData(w, map[string]string{"deleted": id})
}

// imageDimensions returns the pixel size of an image file, or zeros for
// non-images (PDFs) and unreadable files.
func imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
