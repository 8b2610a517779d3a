package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/config"
)

const (
	verifyKeyPrefix = "verify:"
	verifyTokenTTL  = 24 * time.Hour
)

var ErrInvalidVerificationToken = errors.New("invalid or expired verification token")

// EmailService sends account emails and verifies one-shot tokens. Tokens are
// kept in Redis with a TTL, so an expired token simply no longer resolves.
type EmailService struct {
	cfg    *config.EmailConfig
	redis  Redis
	users  UserServiceInterface
	sender emailSender
	logger *zap.SugaredLogger
}

type emailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

func NewEmailService(cfg *config.EmailConfig, redis Redis, users UserServiceInterface, logger *zap.SugaredLogger) *EmailService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var sender emailSender
	switch cfg.Provider {
	case "resend":
		sender = newResendSender(cfg)
	default:
		sender = &consoleSender{logger: logger}
	}

	return &EmailService{cfg: cfg, redis: redis, users: users, sender: sender, logger: logger}
}

func (s *EmailService) SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) error {
	token, err := generateEmailToken()
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, verifyKeyPrefix+token, userID.String(), verifyTokenTTL); err != nil {
		return fmt.Errorf("storing verification token: %w", err)
	}

	link := fmt.Sprintf("%s/#verify-email?token=%s", s.cfg.BaseURL, token)
	body := fmt.Sprintf(
		`<p>Chào bạn!</p><p>Bấm vào link dưới đây để xác nhận email cho tài khoản %s nhé:</p><p><a href="%s">Xác nhận email</a></p>`,
		s.cfg.FromName, link,
	)
	return s.sender.Send(ctx, email, "Xác nhận email của bạn", body)
}

// VerifyEmail resolves a verification token, marks the user verified and
// invalidates the token.
func (s *EmailService) VerifyEmail(ctx context.Context, token string) (uuid.UUID, error) {
	userIDStr, err := s.redis.Get(ctx, verifyKeyPrefix+token)
	if err != nil {
		return uuid.Nil, ErrInvalidVerificationToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, ErrInvalidVerificationToken
	}

	if err := s.users.MarkEmailVerified(ctx, userID); err != nil {
		return uuid.Nil, err
	}

	_ = s.redis.Del(ctx, verifyKeyPrefix+token)
	return userID, nil
}

func generateEmailToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

type resendSender struct {
	client *resend.Client
	from   string
}

func newResendSender(cfg *config.EmailConfig) *resendSender {
	return &resendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
	}
}

func (s *resendSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("sending email via resend: %w", err)
	}
	return nil
}

// consoleSender logs emails instead of sending them; used in local dev.
type consoleSender struct {
	logger *zap.SugaredLogger
}

func (s *consoleSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.logger.Infow("email (console provider)", "to", to, "subject", subject, "body", htmlBody)
	return nil
}
