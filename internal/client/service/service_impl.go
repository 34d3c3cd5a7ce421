package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/client/password"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:             s.genID.Generate(),
		Email:          email,
		PasswordHash:   &hashed,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		EmailConfirmed: false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	client := &domain.Client{
		ID:           s.genID.Generate(),
		UserID:       user.ID,
		FriendlyID:   newFriendlyID(),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		IPAddress:    req.IPAddress,
		AgreeToTerms: req.AgreeToTerms,
		Stage:        domain.StageLead,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateUser(ctx, tx, user); err != nil {
			return err
		}
		if err := s.repo.CreateClient(ctx, tx, client); err != nil {
			return err
		}
		if req.SMSOptIn {
			consent := &domain.SMSConsent{
				ID:          s.genID.Generate(),
				ClientID:    client.ID,
				PhoneNumber: client.PhoneNumber,
				CreatedAt:   now,
			}
			if err := s.repo.CreateSMSConsent(ctx, tx, consent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	client.User = user
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, clientID snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteClientTree(ctx, tx, clientID)
	})
}

func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return false, nil
	}
	_, err = s.repo.FindUserByEmail(ctx, s.db, normalized)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) GetByID(ctx context.Context, clientID snowflake.ID) (*domain.Client, error) {
	client, err := s.repo.FindClientByID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, s.db, client.UserID)
	if err != nil {
		return nil, err
	}
	client.User = user
	return client, nil
}

func (s *Service) IssueSession(ctx context.Context, req domain.IssueSessionRequest) (*domain.LoginResult, error) {
	if req.Client == nil {
		return nil, domain.ErrClientNotFound
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           req.Client.UserID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.repo.CreateSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Client, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.repo.GetSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	client, err := s.repo.FindClientByUserID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	client.User = user

	if err := s.repo.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("session last-seen update failed", zap.Error(err))
	}

	return client, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func newFriendlyID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
