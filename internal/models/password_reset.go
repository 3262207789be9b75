package models

import "time"

// PasswordResetRecord — активный токен сброса пароля.
// На один email в таблице password_resets живёт не больше одной записи
// (уникальный индекс по email); запись удаляется при успешном сбросе.
type PasswordResetRecord struct {
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
