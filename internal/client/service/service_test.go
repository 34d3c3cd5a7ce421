package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/client/repository"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/internal/migration"
	"github.com/hearthshare/inquiry/pkg/db"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repository.Provide(),
	})
	return svc, conn, fake
}

func createRequest() domain.CreateClientRequest {
	return domain.CreateClientRequest{
		Email:        "Ada@Example.com",
		Password:     "correct horse",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PhoneNumber:  "+16175551212",
		State:        "ma",
		IPAddress:    "1.2.3.4",
		SMSOptIn:     true,
		AgreeToTerms: true,
	}
}

func TestCreateClient(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, createRequest())
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	assert.Equal(t, "ada@example.com", client.User.Email)
	assert.False(t, client.User.EmailConfirmed)
	assert.Equal(t, "MA", client.State)
	assert.Equal(t, domain.StageLead, client.Stage)
	assert.Len(t, client.FriendlyID, 8)
	assert.NotNil(t, client.User.PasswordHash)
	assert.NotEqual(t, "correct horse", *client.User.PasswordHash)

	var consentCount int64
	if err := conn.Model(&domain.SMSConsent{}).Where("client_id = ?", client.ID).Count(&consentCount).Error; err != nil {
		t.Fatalf("count consents: %v", err)
	}
	assert.Equal(t, int64(1), consentCount)

	taken, err := svc.EmailTaken(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	assert.True(t, taken)
}

func TestCreateClientWithoutSMSOptIn(t *testing.T) {
	svc, conn, _ := newTestService(t)

	req := createRequest()
	req.SMSOptIn = false
	client, err := svc.CreateClient(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	var consentCount int64
	if err := conn.Model(&domain.SMSConsent{}).Where("client_id = ?", client.ID).Count(&consentCount).Error; err != nil {
		t.Fatalf("count consents: %v", err)
	}
	assert.Equal(t, int64(0), consentCount)
}

func TestCreateClientDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateClient(ctx, createRequest()); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	_, err := svc.CreateClient(ctx, createRequest())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateClientRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := createRequest()
	req.Password = "short"
	if _, err := svc.CreateClient(ctx, req); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for short password, got %v", err)
	}

	req = createRequest()
	req.Email = "not-an-email"
	if _, err := svc.CreateClient(ctx, req); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad email, got %v", err)
	}
}

func TestDeleteClientRemovesTree(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, createRequest())
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if _, err := svc.IssueSession(ctx, domain.IssueSessionRequest{Client: client}); err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	if err := svc.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}

	for _, model := range []any{&domain.User{}, &domain.Client{}, &domain.SMSConsent{}, &domain.Session{}} {
		var count int64
		if err := conn.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected %T table to be empty, found %d rows", model, count)
		}
	}

	taken, err := svc.EmailTaken(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("EmailTaken: %v", err)
	}
	assert.False(t, taken, "email is reusable after deletion")
}

func TestSessionLifecycle(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, createRequest())
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	login, err := svc.IssueSession(ctx, domain.IssueSessionRequest{
		Client:    client,
		UserAgent: "test-agent",
		IPAddress: "1.2.3.4",
	})
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	assert.NotEmpty(t, login.RawToken)

	authed, err := svc.Authenticate(ctx, login.RawToken)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	assert.Equal(t, client.ID, authed.ID)
	assert.Equal(t, "ada@example.com", authed.User.Email)

	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	fake.Advance(8 * 24 * time.Hour)
	if _, err := svc.Authenticate(ctx, login.RawToken); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
