package dating

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/imadgeboyega/kiekky-match/internal/auth"
	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
)

type Handler struct {
	service Service
	logger  *logging.Logger
}

func NewHandler(service Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{service: service, logger: logger}
}

// SearchMatches handles POST /api/v1/matches/search
func (h *Handler) SearchMatches(w http.ResponseWriter, r *http.Request) {
	searcherID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	filters, err := filterSetFrom(dto.Filters)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	page, err := h.service.GetMatches(r.Context(), searcherID, filters, Page{Offset: dto.Offset, Limit: dto.Limit})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.SuccessResponse(w, toMatchPageDTO(page), http.StatusOK)
}

// GetRecommendations handles POST /api/v1/matches/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	searcherID, ok := auth.SearcherIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto RecommendationsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.ErrorResponse(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	filters, err := filterSetFrom(dto.Filters)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	recs, err := h.service.GetRecommendations(r.Context(), searcherID, filters)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	utils.SuccessResponse(w, RecommendationsResponseDTO{Recommendations: recs}, http.StatusOK)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidFilterBounds), errors.Is(err, ErrInvalidFilterValue):
		utils.ErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrSearcherNotFound):
		utils.ErrorResponse(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("match request failed", "error", err)
		utils.ErrorResponse(w, "Failed to load matches", http.StatusInternalServerError)
	}
}
