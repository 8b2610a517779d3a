package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/models"
	"github.com/vothaan/chongi/internal/services"
)

// maxAttachmentSize bounds the multipart form, image included.
const maxAttachmentSize = 10 << 20 // 10 MiB

type ItemHandler struct {
	itemService services.ItemServiceInterface
	logger      *zap.SugaredLogger
}

func NewItemHandler(itemService services.ItemServiceInterface, logger *zap.SugaredLogger) *ItemHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ItemHandler{itemService: itemService, logger: logger}
}

type CreateItemRequest struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Note     *string  `json:"note"`
	Moods    []string `json:"mood"`
	Budget   string   `json:"budget"`
	Weathers []string `json:"weather"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetCategories returns the closed category set in a stable order.
func (h *ItemHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]CategoryResponse, 0, len(models.ValidCategories))
	for _, c := range models.ValidCategories {
		categories = append(categories, CategoryResponse{ID: c, Name: models.CategoryNames[c]})
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Errorw("listing items", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	req, attachment, cleanup, err := parseCreateItemRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer cleanup()

	params := models.CreateItemParams{
		UserID:   user.ID,
		Category: req.Category,
		Name:     req.Name,
		Note:     req.Note,
		Moods:    req.Moods,
		Budget:   req.Budget,
		Weathers: req.Weathers,
	}

	item, err := h.itemService.Create(r.Context(), params, attachment)
	if errors.Is(err, services.ErrEmptyName) {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if errors.Is(err, services.ErrInvalidCategory) {
		writeError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		h.logger.Errorw("creating item", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	err = h.itemService.Delete(r.Context(), user.ID, itemID)
	if errors.Is(err, services.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		h.logger.Errorw("deleting item", "user_id", user.ID, "item_id", itemID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseCreateItemRequest accepts either a JSON body or a multipart form with
// an optional image file. The returned cleanup closes the form file when one
// was opened and is always safe to call.
func parseCreateItemRequest(r *http.Request) (CreateItemRequest, *services.Attachment, func(), error) {
	var req CreateItemRequest
	noop := func() {}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return req, nil, noop, err
	}

	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, nil, noop, err
		}
		return req, nil, noop, nil
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		return req, nil, noop, err
	}

	req.Category = r.FormValue("category")
	req.Name = r.FormValue("name")
	req.Budget = r.FormValue("budget")
	if note := strings.TrimSpace(r.FormValue("note")); note != "" {
		req.Note = &note
	}
	req.Moods = r.MultipartForm.Value["moods"]
	req.Weathers = r.MultipartForm.Value["weathers"]

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, noop, nil
	}
	if err != nil {
		return req, nil, noop, err
	}

	attachment := &services.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}
	return req, attachment, func() { file.Close() }, nil
}
