package repository

import (
	"context"
	"errors"
	"skycast/internal/logger"
	"skycast/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNoReset — нет записи сброса для пары email+token.
var ErrNoReset = errors.New("reset record not found")

// ErrResetUserMissing — запись сброса есть, а пользователя с таким email нет.
// Это повреждение данных, а не неверный токен.
var ErrResetUserMissing = errors.New("reset record without user")

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// FindByEmail возвращает активную запись сброса или nil, если её нет.
func (r *PasswordResetRepository) FindByEmail(ctx context.Context, email string) (*models.PasswordResetRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT email, token, created_at FROM password_resets WHERE email = $1`, email)

	var rec models.PasswordResetRecord
	if err := row.Scan(&rec.Email, &rec.Token, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Log.Error("Ошибка поиска токена сброса (repo)", zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

// InsertOrGet вставляет новый токен для email и возвращает живой токен.
// Если запись уже существует, возвращается её токен без изменений —
// одна атомарная операция закрывает гонку find-then-insert двух
// одновременных запросов сброса (уникальный индекс по email).
// DO UPDATE оставляет прежние token и created_at, но позволяет RETURNING
// отдать существующую строку.
func (r *PasswordResetRepository) InsertOrGet(ctx context.Context, email, token string) (string, error) {
	var live string
	err := r.db.QueryRow(ctx, `
		INSERT INTO password_resets (email, token, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (email) DO UPDATE SET token = password_resets.token
		RETURNING token
	`, email, token).Scan(&live)
	if err != nil {
		logger.Log.Error("Ошибка сохранения токена сброса (repo)", zap.String("email", email), zap.Error(err))
		return "", err
	}
	return live, nil
}

// DeleteByEmail удаляет все записи сброса для email.
func (r *PasswordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE email = $1`, email)
	if err != nil {
		logger.Log.Error("Ошибка удаления токенов сброса (repo)", zap.String("email", email), zap.Error(err))
	}
	return err
}

// Consume атомарно гасит токен и ставит новый хеш пароля.
//
// Всё в одной транзакции:
//  1. условный DELETE по паре email+token — единственный источник истины:
//     из N конкурентных попыток с одним токеном строки достанутся ровно одной;
//  2. зачистка остальных записей этого email (если вдруг накопились);
//  3. пользователь ищется только после подтверждённого удаления;
//  4. запись нового хеша.
//
// При ErrNoReset/ErrResetUserMissing транзакция откатывается — ни одной
// мутации на пути отказа.
func (r *PasswordResetRepository) Consume(ctx context.Context, email, token, passwordHash string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`DELETE FROM password_resets WHERE email = $1 AND token = $2`, email, token)
	if err != nil {
		logger.Log.Error("Ошибка условного удаления токена сброса (repo)", zap.Error(err))
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNoReset
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM password_resets WHERE email = $1`, email); err != nil {
		logger.Log.Error("Ошибка зачистки токенов сброса (repo)", zap.Error(err))
		return 0, err
	}

	var userID int
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Log.Error("Запись сброса без пользователя (repo)", zap.String("email", email))
			return 0, ErrResetUserMissing
		}
		return 0, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, userID); err != nil {
		logger.Log.Error("Ошибка обновления пароля при сбросе (repo)", zap.Int("user_id", userID), zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return userID, nil
}
