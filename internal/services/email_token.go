package services

import (
	"context"
	"errors"
	"skycast/internal/logger"
	"skycast/internal/models"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTokenInvalid = errors.New("неверный токен")
	ErrTokenExpired = errors.New("токен истёк")
)

type EmailTokenRepo interface {
	SaveToken(ctx context.Context, token *models.EmailVerificationToken) error
	VerifyToken(ctx context.Context, token string) (*models.EmailVerificationToken, error)
	MarkConfirmed(ctx context.Context, token string) error
	GetLastTokenByUserID(ctx context.Context, userID int) (*models.EmailVerificationToken, error)
}

type emailTokenUserRepo interface {
	SetEmailVerified(ctx context.Context, userID int) error
}

type EmailTokenService struct {
	repo     EmailTokenRepo
	userRepo emailTokenUserRepo
}

func NewEmailTokenService(repo EmailTokenRepo, userRepo emailTokenUserRepo) *EmailTokenService {
	return &EmailTokenService{repo: repo, userRepo: userRepo}
}

func (s *EmailTokenService) GenerateToken(ctx context.Context, userID int) (*models.EmailVerificationToken, error) {
	token := uuid.New().String()
	expires := time.Now().Add(24 * time.Hour)
	t := &models.EmailVerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expires,
	}
	err := s.repo.SaveToken(ctx, t)
	return t, err
}

func (s *EmailTokenService) ConfirmToken(ctx context.Context, token string) error {
	t, err := s.repo.VerifyToken(ctx, token)
	if err != nil {
		return ErrTokenInvalid
	}
	if t.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}
	if t.Confirmed {
		return ErrTokenInvalid
	}
	if err := s.repo.MarkConfirmed(ctx, token); err != nil {
		return err
	}
	if err := s.userRepo.SetEmailVerified(ctx, t.UserID); err != nil {
		return err
	}
	logger.Log.Info("Почта подтверждена (service)", zap.Int("user_id", t.UserID))
	return nil
}

func (s *EmailTokenService) GetLastTokenByUserID(ctx context.Context, userID int) (*models.EmailVerificationToken, error) {
	return s.repo.GetLastTokenByUserID(ctx, userID)
}
