package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vothaan/chongi/internal/config"
	"github.com/vothaan/chongi/internal/models"
)

type fakeUsers struct {
	markVerifiedErr error
	markedUsers     []uuid.UUID
}

func (f *fakeUsers) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUsers) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	f.markedUsers = append(f.markedUsers, userID)
	return f.markVerifiedErr
}

type capturingSender struct {
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (c *capturingSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	c.calls++
	c.to = to
	c.subject = subject
	c.body = htmlBody
	return c.err
}

func newTestEmailService(redis Redis, users UserServiceInterface, sender emailSender) *EmailService {
	svc := NewEmailService(&config.EmailConfig{
		Provider: "console",
		FromName: "Chọn Gì?",
		BaseURL:  "http://localhost:8080",
	}, redis, users, nil)
	if sender != nil {
		svc.sender = sender
	}
	return svc
}

func TestEmailService_SendVerificationEmail(t *testing.T) {
	redis := &fakeRedis{}
	sender := &capturingSender{}
	svc := newTestEmailService(redis, &fakeUsers{}, sender)

	err := svc.SendVerificationEmail(context.Background(), uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redis.setCalls != 1 {
		t.Fatalf("expected token stored in redis, got %d sets", redis.setCalls)
	}
	if sender.calls != 1 || sender.to != "user@example.com" {
		t.Fatalf("expected one email to the user, got %d to %q", sender.calls, sender.to)
	}
	if !strings.Contains(sender.body, "verify-email?token=") {
		t.Error("email body should contain the verification link")
	}
}

func TestEmailService_SendVerificationEmail_RedisError(t *testing.T) {
	redis := &fakeRedis{setErr: errors.New("redis down")}
	sender := &capturingSender{}
	svc := newTestEmailService(redis, &fakeUsers{}, sender)

	err := svc.SendVerificationEmail(context.Background(), uuid.New(), "user@example.com")
	if err == nil {
		t.Fatal("expected error when token cannot be stored")
	}
	if sender.calls != 0 {
		t.Fatal("no email should be sent when the token was not stored")
	}
}

func TestEmailService_VerifyEmail(t *testing.T) {
	userID := uuid.New()
	redis := &fakeRedis{getValue: userID.String()}
	users := &fakeUsers{}
	svc := newTestEmailService(redis, users, nil)

	got, err := svc.VerifyEmail(context.Background(), "sometoken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user %v, got %v", userID, got)
	}
	if len(users.markedUsers) != 1 || users.markedUsers[0] != userID {
		t.Fatal("expected user to be marked verified")
	}
	if redis.delCalls != 1 {
		t.Fatal("expected token to be invalidated after use")
	}
}

func TestEmailService_VerifyEmail_UnknownToken(t *testing.T) {
	redis := &fakeRedis{getErr: errors.New("nil")}
	svc := newTestEmailService(redis, &fakeUsers{}, nil)

	_, err := svc.VerifyEmail(context.Background(), "expired")
	if !errors.Is(err, ErrInvalidVerificationToken) {
		t.Fatalf("expected ErrInvalidVerificationToken, got %v", err)
	}
}

func TestEmailService_VerifyEmail_GarbageValue(t *testing.T) {
	redis := &fakeRedis{getValue: "not-a-uuid"}
	svc := newTestEmailService(redis, &fakeUsers{}, nil)

	_, err := svc.VerifyEmail(context.Background(), "token")
	if !errors.Is(err, ErrInvalidVerificationToken) {
		t.Fatalf("expected ErrInvalidVerificationToken, got %v", err)
	}
}
