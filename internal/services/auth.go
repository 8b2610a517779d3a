package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vothaan/chongi/internal/models"
)

const (
	bcryptCost       = 12
	sessionDuration  = 30 * 24 * time.Hour // 30 days
	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrPasswordTooLong    = errors.New("password too long")
)

// AuthService is the identity gate: it owns session lifecycle, and every
// other operation admits a request only if a session resolves to a user.
type AuthService struct {
	db    DB
	redis Redis
	users *UserService
}

func NewAuthService(db DB, redis Redis) *AuthService {
	return &AuthService{
		db:    db,
		redis: redis,
		users: NewUserService(db),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (s *AuthService) generateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}

	token = hex.EncodeToString(bytes)
	return token, s.hashToken(token), nil
}

func (s *AuthService) hashToken(token string) string {
	hashBytes := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hashBytes[:])
}

func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, tokenHash, err := s.generateSessionToken()
	if err != nil {
		return "", err
	}

	// Redis is the primary session store; PostgreSQL is the fallback when
	// Redis is unavailable.
	redisKey := sessionKeyPrefix + tokenHash
	if err := s.redis.Set(ctx, redisKey, userID.String(), sessionDuration); err != nil {
		expiresAt := time.Now().Add(sessionDuration)
		_, err = s.db.Exec(ctx,
			`INSERT INTO sessions (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
			userID, tokenHash, expiresAt,
		)
		if err != nil {
			return "", fmt.Errorf("creating session in database: %w", err)
		}
	}

	return token, nil
}

func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	tokenHash := s.hashToken(token)

	redisKey := sessionKeyPrefix + tokenHash
	userIDStr, err := s.redis.Get(ctx, redisKey)
	if err == nil {
		// Found in Redis; sliding expiry.
		_ = s.redis.Expire(ctx, redisKey, sessionDuration)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("parsing user id: %w", err)
		}
		return s.users.GetByID(ctx, userID)
	}

	var session models.Session
	err = s.db.QueryRow(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM sessions WHERE token_hash = $1`,
		tokenHash,
	).Scan(&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt, &session.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_, _ = s.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", session.ID)
		return nil, ErrSessionExpired
	}

	return s.users.GetByID(ctx, session.UserID)
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	tokenHash := s.hashToken(token)

	_ = s.redis.Del(ctx, sessionKeyPrefix+tokenHash)

	_, err := s.db.Exec(ctx, "DELETE FROM sessions WHERE token_hash = $1", tokenHash)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
