package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/models"
	"github.com/vothaan/chongi/internal/services"
)

type SuggestHandler struct {
	itemService services.ItemServiceInterface
	picker      services.PickerInterface
	suggester   services.SuggesterInterface
	logger      *zap.SugaredLogger
}

func NewSuggestHandler(itemService services.ItemServiceInterface, picker services.PickerInterface, suggester services.SuggesterInterface, logger *zap.SugaredLogger) *SuggestHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SuggestHandler{
		itemService: itemService,
		picker:      picker,
		suggester:   suggester,
		logger:      logger,
	}
}

type SuggestRequest struct {
	Category string `json:"category"`
	Mood     string `json:"mood"`
	Budget   string `json:"budget"`
	Weather  string `json:"weather"`
}

type SuggestResponse struct {
	Item   *models.Item `json:"item"`
	Reason string       `json:"reason,omitempty"`
}

// Random draws a uniformly random item from one of the caller's categories.
// An empty category yields a nil item, not an error.
func (h *SuggestHandler) Random(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	category := r.URL.Query().Get("category")
	items, err := h.itemService.List(r.Context(), user.ID, category)
	if errors.Is(err, services.ErrInvalidCategory) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		h.logger.Errorw("listing items for random pick", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Item: h.picker.Pick(items)})
}

// Suggest runs the AI-ranked suggestion. The suggester is total: any AI
// failure degrades to a random pick with a fixed reason, so this endpoint
// only errors on validation or store problems.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.itemService.List(r.Context(), user.ID, req.Category)
	if errors.Is(err, services.ErrInvalidCategory) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		h.logger.Errorw("listing items for suggestion", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := h.suggester.Suggest(r.Context(), items, models.SuggestionParams{
		Mood:    req.Mood,
		Budget:  req.Budget,
		Weather: req.Weather,
	})

	writeJSON(w, http.StatusOK, SuggestResponse{Item: result.Item, Reason: result.Reason})
}
