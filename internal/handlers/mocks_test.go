package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/vothaan/chongi/internal/models"
	"github.com/vothaan/chongi/internal/services"
)

type mockUserService struct {
	CreateFunc            func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerifiedFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, userID)
	}
	return nil
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	VerifyPasswordFunc  func(hash, password string) bool
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return true
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "session-token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, services.ErrSessionNotFound
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

type mockItemService struct {
	ListFunc   func(ctx context.Context, userID uuid.UUID, category string) ([]models.Item, error)
	CreateFunc func(ctx context.Context, params models.CreateItemParams, attachment *services.Attachment) (*models.Item, error)
	DeleteFunc func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *mockItemService) List(ctx context.Context, userID uuid.UUID, category string) ([]models.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, category)
	}
	return nil, nil
}

func (m *mockItemService) Create(ctx context.Context, params models.CreateItemParams, attachment *services.Attachment) (*models.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params, attachment)
	}
	return nil, nil
}

func (m *mockItemService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, itemID)
	}
	return nil
}

type mockEmailService struct {
	SendVerificationEmailFunc func(ctx context.Context, userID uuid.UUID, email string) error
	VerifyEmailFunc           func(ctx context.Context, token string) (uuid.UUID, error)
}

func (m *mockEmailService) SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(ctx, userID, email)
	}
	return nil
}

func (m *mockEmailService) VerifyEmail(ctx context.Context, token string) (uuid.UUID, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return uuid.Nil, nil
}

type mockPicker struct {
	PickFunc func(items []models.Item) *models.Item
}

func (m *mockPicker) Pick(items []models.Item) *models.Item {
	if m.PickFunc != nil {
		return m.PickFunc(items)
	}
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}

type mockSuggester struct {
	SuggestFunc func(ctx context.Context, items []models.Item, params models.SuggestionParams) models.SuggestionResult
}

func (m *mockSuggester) Suggest(ctx context.Context, items []models.Item, params models.SuggestionParams) models.SuggestionResult {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, items, params)
	}
	return models.SuggestionResult{}
}
