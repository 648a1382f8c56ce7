package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/models"
)

// MediaHandler handles library CRUD. Accepting a search result into the
// library happens here: the client POSTs the chosen reference and gets
// back the stored entry with the opaque id to write onto a tag.
type MediaHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(db *models.Database, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		db:     db,
		logger: logger,
	}
}

// List handles GET /api/media[?owner=...]
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		medias []*models.StoredMedia
		err    error
	)
	if owner := r.URL.Query().Get("owner"); owner != "" {
		medias, err = h.db.GetMediasByOwner(owner)
	} else {
		medias, err = h.db.GetAllMedias()
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if medias == nil {
		medias = []*models.StoredMedia{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(medias)
}

// createMediaRequest is the body of POST /api/media.
type createMediaRequest struct {
	Owner string                `json:"owner"`
	Ref   models.MediaReference `json:"ref"`
}

// Create handles POST /api/media
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Ref.ChannelID == "" || req.Ref.ContentID == "" {
		http.Error(w, "ref.channelId and ref.contentId are required", http.StatusBadRequest)
		return
	}
	req.Ref.MediaType = models.NormalizeMediaType(req.Ref.MediaType)

	media, err := h.db.CreateMedia(req.Owner, req.Ref)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"media_id": media.ID,
		"title":    media.Ref.Title,
	}).Info("Media added to library")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(media)
}

// Get handles GET /api/media/{id}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	media, err := h.db.GetMediaByID(r.PathValue("id"))
	if err != nil {
		if models.IsNotFound(err) {
			http.Error(w, "Unknown media id", http.StatusNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to get media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(media)
}

// updateMediaRequest is the body of PATCH /api/media/{id}. Only the title
// is editable; the reference itself is immutable.
type updateMediaRequest struct {
	Title string `json:"title"`
}

// Update handles PATCH /api/media/{id}
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	media, err := h.db.UpdateMediaTitle(r.PathValue("id"), req.Title)
	if err != nil {
		if models.IsNotFound(err) {
			http.Error(w, "Unknown media id", http.StatusNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to update media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(media)
}

// Delete handles DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteMedia(r.PathValue("id")); err != nil {
		if models.IsNotFound(err) {
			http.Error(w, "Unknown media id", http.StatusNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to delete media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
