package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/internal/lifecycle/domain"
	"github.com/hearthshare/inquiry/internal/migration"
	"github.com/hearthshare/inquiry/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	})
	return svc, conn
}

func seedClient(t *testing.T, conn *gorm.DB, stage string) *clientdomain.Client {
	t.Helper()
	client := &clientdomain.Client{
		ID:         snowflake.ID(1001),
		UserID:     snowflake.ID(2001),
		FriendlyID: "AAAA1111",
		Stage:      stage,
	}
	if err := conn.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func TestSubmitInquiryTransitionsLead(t *testing.T) {
	svc, conn := newTestService(t)

	client := seedClient(t, conn, clientdomain.StageLead)
	if err := svc.SubmitInquiry(context.Background(), client.ID, snowflake.ID(3001)); err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}

	var got clientdomain.Client
	if err := conn.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if got.Stage != clientdomain.StageInquiryInReview {
		t.Fatalf("expected stage %q, got %q", clientdomain.StageInquiryInReview, got.Stage)
	}
}

func TestSubmitInquiryRejectsNonLead(t *testing.T) {
	svc, conn := newTestService(t)

	client := seedClient(t, conn, clientdomain.StageInquiryInReview)
	err := svc.SubmitInquiry(context.Background(), client.ID, snowflake.ID(3001))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubmitInquiryUnknownClient(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SubmitInquiry(context.Background(), snowflake.ID(9999), snowflake.ID(3001))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
