package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/vothaan/chongi/internal/models"
)

// Row, Rows and CommandTag mirror the pgx result types so services can be
// exercised against fakes without a live PostgreSQL.
type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

type CommandTag interface {
	RowsAffected() int64
}

// DB is the narrow query surface services need from the record store.
// *pgxpool.Pool is adapted to it via NewPoolAdapter.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
}

// Redis is the subset of redis.Client used for sessions and one-shot tokens.
type Redis interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Uploader stores a binary object under a key and returns a durable public
// URL for it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error)
}

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, userID uuid.UUID) error
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// ItemServiceInterface defines the contract for item store operations used by
// handlers.
type ItemServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID, category string) ([]models.Item, error)
	Create(ctx context.Context, params models.CreateItemParams, attachment *Attachment) (*models.Item, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// PickerInterface defines the contract for the uniform random pick.
type PickerInterface interface {
	Pick(items []models.Item) *models.Item
}

// SuggesterInterface defines the contract for the AI suggestion path.
// Implementations must be total: a non-empty input always yields a member of
// the input, an empty input yields a nil item, and no error is ever returned.
type SuggesterInterface interface {
	Suggest(ctx context.Context, items []models.Item, params models.SuggestionParams) models.SuggestionResult
}

// EmailServiceInterface defines the contract for email operations.
type EmailServiceInterface interface {
	SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) error
	VerifyEmail(ctx context.Context, token string) (uuid.UUID, error)
}
