package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/models"
)

var (
	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrItemNotFound    = errors.New("item not found")
)

// Attachment is an optional image supplied with a create call.
type Attachment struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// ItemService owns the per-category item store: list, create, delete.
// There is no update path.
type ItemService struct {
	db      DB
	storage Uploader
	logger  *zap.SugaredLogger
}

func NewItemService(db DB, storage Uploader, logger *zap.SugaredLogger) *ItemService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ItemService{db: db, storage: storage, logger: logger}
}

// List returns all items owned by userID in category, newest first. Two items
// created in the same instant share a created_at; their relative order is
// store-dependent and not guaranteed.
func (s *ItemService) List(ctx context.Context, userID uuid.UUID, category string) ([]models.Item, error) {
	if !models.IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, category, name, note, mood, budget, weather, image_url, created_at
		 FROM items
		 WHERE user_id = $1 AND category = $2
		 ORDER BY created_at DESC`,
		userID, category,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.Category, &item.Name, &item.Note,
			&item.Moods, &item.Budget, &item.Weathers, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	return items, nil
}

// Create validates and persists a new item. If an attachment is supplied its
// upload is attempted first; a failed upload does not fail the create and the
// item is stored without an image.
func (s *ItemService) Create(ctx context.Context, params models.CreateItemParams, attachment *Attachment) (*models.Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrEmptyName
	}
	if !models.IsValidCategory(params.Category) {
		return nil, ErrInvalidCategory
	}

	if attachment != nil {
		key := objectKey(params.UserID, attachment.Filename)
		url, err := s.storage.Upload(ctx, key, attachment.ContentType, attachment.Data)
		if err != nil {
			s.logger.Warnw("attachment upload failed, creating item without image",
				"user_id", params.UserID, "filename", attachment.Filename, "error", err)
		} else {
			params.ImageURL = &url
		}
	}

	item := &models.Item{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO items (user_id, category, name, note, mood, budget, weather, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, category, name, note, mood, budget, weather, image_url, created_at`,
		params.UserID, params.Category, strings.TrimSpace(params.Name), params.Note,
		dedupe(params.Moods), params.Budget, dedupe(params.Weathers), params.ImageURL,
	).Scan(&item.ID, &item.UserID, &item.Category, &item.Name, &item.Note,
		&item.Moods, &item.Budget, &item.Weathers, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return item, nil
}

// Delete removes an item owned by userID. Deleting an id that does not exist
// (or belongs to someone else) returns ErrItemNotFound.
func (s *ItemService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM items WHERE id = $1 AND user_id = $2`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// objectKey follows the blob store convention {userId}/{timestamp}_{name}.
func objectKey(userID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%d_%s", userID, time.Now().UnixMilli(), filename)
}

// dedupe removes duplicate tags, preserving first-seen order. Tag sets are
// unordered but must not contain duplicates.
func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
