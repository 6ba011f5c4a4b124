package presets

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/imadgeboyega/kiekky-match/internal/auth"
	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
	"github.com/imadgeboyega/kiekky-match/internal/dating"
)

type SavePresetRequestDTO struct {
	Name    string               `json:"name"`
	Filters *dating.FilterParams `json:"filters" validate:"required"`
}

type PresetDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Filters     *dating.FilterSet `json:"filters"`
	FilterCount int               `json:"filter_count"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUsed    time.Time         `json:"last_used"`
}

type ApplyPresetResponseDTO struct {
	ID      string            `json:"id"`
	Filters *dating.FilterSet `json:"filters"`
}

func toPresetDTO(rec SavedFilterSet) PresetDTO {
	return PresetDTO{
		ID:          rec.ID,
		Name:        rec.Name,
		Filters:     rec.Filters,
		FilterCount: rec.FilterCount(),
		CreatedAt:   rec.CreatedAt,
		LastUsed:    rec.LastUsed,
	}
}

type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{store: store, logger: logger}
}

// ListPresets handles GET /api/v1/filters/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.store.List(r.Context(), ownerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	out := make([]PresetDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, toPresetDTO(rec))
	}
	utils.SuccessResponse(w, out, http.StatusOK)
}

// SavePreset handles POST /api/v1/filters/presets
func (h *Handler) SavePreset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto SavePresetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	filters, err := dating.NewFilterSet(*dto.Filters)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	rec, err := h.store.Save(r.Context(), ownerID, dto.Name, filters)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.SuccessResponse(w, toPresetDTO(rec), http.StatusCreated)
}

// GetPreset handles GET /api/v1/filters/presets/{id}
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := presetID(w, r)
	if !ok {
		return
	}

	rec, err := h.store.Get(r.Context(), ownerID, id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.SuccessResponse(w, toPresetDTO(rec), http.StatusOK)
}

// ApplyPreset handles POST /api/v1/filters/presets/{id}/apply
func (h *Handler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := presetID(w, r)
	if !ok {
		return
	}

	filters, err := h.store.Apply(r.Context(), ownerID, id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.SuccessResponse(w, ApplyPresetResponseDTO{ID: id, Filters: filters}, http.StatusOK)
}

// DeletePreset handles DELETE /api/v1/filters/presets/{id}
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := presetID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), ownerID, id); err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.MessageResponse(w, "Preset deleted", http.StatusOK)
}

func presetID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		utils.ErrorResponse(w, "Invalid preset ID", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPresetNotFound):
		utils.ErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidPresetName),
		errors.Is(err, ErrMissingFilters),
		errors.Is(err, dating.ErrInvalidFilterBounds),
		errors.Is(err, dating.ErrInvalidFilterValue):
		utils.ErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.logger.Error("preset request failed", "error", err)
		utils.ErrorResponse(w, "Failed to process preset request", http.StatusInternalServerError)
	}
}
