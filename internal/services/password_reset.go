package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"skycast/internal/logger"
	"skycast/internal/models"
	"skycast/internal/repository"
	"skycast/internal/utils"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	// ErrEmailNotFound — на такой email никто не зарегистрирован.
	ErrEmailNotFound = errors.New("email не найден")
	// ErrTokenMismatch — пара email+токен не совпала ни с одной живой записью.
	// Не различаем "неверный email" и "неверный токен".
	ErrTokenMismatch = errors.New("неверный email или токен")
	// ErrResetCorrupted — запись сброса есть, пользователя нет. Повреждение
	// данных, наружу уходит как внутренняя ошибка, не как ErrTokenMismatch.
	ErrResetCorrupted = errors.New("несогласованные данные сброса")
	// ErrPasswordTooShort — новый пароль короче минимума.
	ErrPasswordTooShort = errors.New("пароль слишком короткий")
	// ErrOldPasswordMismatch — старый пароль не подошёл при смене пароля.
	ErrOldPasswordMismatch = errors.New("старый пароль неверен")
)

const minPasswordLength = 6

// ResetTokenRepo — хранилище токенов сброса (одна живая запись на email).
type ResetTokenRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.PasswordResetRecord, error)
	InsertOrGet(ctx context.Context, email, token string) (string, error)
	Consume(ctx context.Context, email, token, passwordHash string) (int, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type resetUserRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
}

type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// PasswordResetService владеет жизненным циклом токена сброса:
// выдача (идемпотентная), повторное использование, гашение.
type PasswordResetService struct {
	resetRepo ResetTokenRepo
	userRepo  resetUserRepo
	mailer    ResetMailer
	appURL    string // фронтовый URL: ссылка вида /reset?email=...&token=...
}

func NewPasswordResetService(resetRepo ResetTokenRepo, userRepo resetUserRepo, mailer ResetMailer, appURL string) *PasswordResetService {
	return &PasswordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		appURL:    strings.TrimRight(appURL, "/"),
	}
}

// RequestReset ищет пользователя, выдаёт (или переиспользует) токен и
// отправляет письмо. Для незнакомого email возвращает ErrEmailNotFound —
// поведение исходного API; маскирующий единый ответ здесь не применяется.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	logger.Log.Info("Запрос на сброс пароля", zap.String("email", email))

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Warn("Сброс запрошен для незарегистрированного email", zap.String("email", email))
			return ErrEmailNotFound
		}
		logger.Log.Error("Ошибка поиска пользователя при запросе сброса", zap.Error(err))
		return err
	}

	token, err := s.ensureToken(ctx, email)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset?email=%s&token=%s", s.appURL, url.QueryEscape(email), token)
	if err := s.mailer.SendPasswordReset(ctx, email, resetLink); err != nil {
		logger.Log.Error("Ошибка отправки письма для сброса пароля",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Письмо со ссылкой на сброс пароля поставлено на отправку", zap.String("email", email))
	return nil
}

// ensureToken возвращает живой токен email, создавая его при отсутствии.
// Существующий токен отдаётся как есть — повторные запросы сброса получают
// тот же токен, пока он не погашен; created_at не обновляется.
func (s *PasswordResetService) ensureToken(ctx context.Context, email string) (string, error) {
	rec, err := s.resetRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.Token, nil
	}

	token, err := utils.RandomToken(utils.ResetTokenLength)
	if err != nil {
		logger.Log.Error("Ошибка генерации токена сброса", zap.Error(err))
		return "", err
	}

	// InsertOrGet атомарен: если параллельный запрос успел вставить свою
	// запись, вернётся её токен, а не наш.
	return s.resetRepo.InsertOrGet(ctx, email, token)
}

// ConsumeReset гасит токен и ставит новый пароль. Успех ровно у одного из
// конкурентных вызовов с одинаковой парой email+токен; остальные получают
// ErrTokenMismatch. На пути отказа мутаций нет.
func (s *PasswordResetService) ConsumeReset(ctx context.Context, email, token, newPassword string) error {
	email = normalizeEmail(email)
	logger.Log.Info("Попытка сброса пароля по токену", zap.String("email", email))

	if len(newPassword) < minPasswordLength {
		logger.Log.Warn("Слишком короткий новый пароль", zap.String("email", email))
		return ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля", zap.Error(err))
		return err
	}

	userID, err := s.resetRepo.Consume(ctx, email, token, hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoReset):
			logger.Log.Warn("Неверный токен или email при сбросе пароля", zap.String("email", email))
			return ErrTokenMismatch
		case errors.Is(err, repository.ErrResetUserMissing):
			logger.Log.Error("Токен сброса без пользователя", zap.String("email", email))
			return ErrResetCorrupted
		default:
			logger.Log.Error("Ошибка гашения токена сброса", zap.Error(err))
			return err
		}
	}

	logger.Log.Info("Пароль успешно сброшен", zap.Int("user_id", userID))
	return nil
}

// ChangePassword меняет пароль авторизованного пользователя по старому
// паролю. Успешная смена гасит и висящий токен сброса этого email.
func (s *PasswordResetService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	logger.Log.Info("Смена пароля (авторизованный пользователь)", zap.Int("user_id", user.ID))

	if len(newPassword) < minPasswordLength {
		logger.Log.Warn("Слишком короткий новый пароль", zap.Int("user_id", user.ID))
		return ErrPasswordTooShort
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		logger.Log.Warn("Старый пароль не совпадает", zap.Int("user_id", user.ID))
		return ErrOldPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля", zap.Error(err), zap.Int("user_id", user.ID))
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		logger.Log.Error("Ошибка обновления пароля пользователя", zap.Int("user_id", user.ID), zap.Error(err))
		return err
	}

	if err := s.resetRepo.DeleteByEmail(ctx, normalizeEmail(user.Email)); err != nil {
		logger.Log.Warn("Не удалось удалить токен сброса после смены пароля",
			zap.Int("user_id", user.ID),
			zap.Error(err),
		)
	}

	logger.Log.Info("Пароль успешно изменён", zap.Int("user_id", user.ID))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
