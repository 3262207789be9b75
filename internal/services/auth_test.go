package services

import (
	"context"
	"skycast/internal/models"
	"skycast/internal/utils"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User
	lastUser *models.User
	tokens   map[int]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[int]string),
	}
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, userID int, passwordHash string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) SetEmailVerified(_ context.Context, userID int) error {
	for _, u := range m.users {
		if u.ID == userID {
			now := time.Now()
			u.EmailVerifiedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	m.tokens[userID] = token
	return nil
}

func (m *mockUserRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	return m.tokens[userID] == token, nil
}

func (m *mockUserRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	delete(m.tokens, userID)
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user := &models.User{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
	}

	err := service.RegisterUser(context.Background(), user, "secret123")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "secret123" {
		t.Fatal("пароль сохранён в открытом виде")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	repo.users["ivan@example.com"] = &models.User{ID: 1, Email: "ivan@example.com"}

	err := service.RegisterUser(context.Background(), &models.User{Email: "ivan@example.com"}, "secret123")
	if err == nil {
		t.Fatal("ожидалась ошибка при повторной регистрации email")
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	// создаём пользователя вручную
	hashed, _ := utils.HashPassword("secret123")
	repo.users["ivan@example.com"] = &models.User{
		ID:           1,
		Email:        "ivan@example.com",
		PasswordHash: hashed,
	}

	access, refresh, user, err := service.LoginUser(context.Background(), "ivan@example.com", "secret123", "mysecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	if access == "" || refresh == "" {
		t.Fatal("токены не сгенерированы")
	}
	if user == nil || user.ID != 1 {
		t.Fatal("пользователь не возвращён")
	}
	if repo.tokens[1] != refresh {
		t.Fatal("refresh токен не сохранён")
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.users["ivan@example.com"] = &models.User{ID: 1, Email: "ivan@example.com", PasswordHash: hashed}

	_, _, _, err := service.LoginUser(context.Background(), "ivan@example.com", "wrongpass", "mysecret", time.Minute, time.Hour)
	if err == nil {
		t.Fatal("ожидалась ошибка при неверном пароле")
	}
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, _, _, err := service.LoginUser(context.Background(), "unknown@example.com", "pass", "secret", time.Minute, time.Hour)
	if err == nil {
		t.Fatal("ожидалась ошибка при логине несуществующего пользователя")
	}
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.users["ivan@example.com"] = &models.User{ID: 1, Email: "ivan@example.com", PasswordHash: hashed}

	_, refresh, _, err := service.LoginUser(context.Background(), "ivan@example.com", "secret123", "mysecret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	valid, _ := service.ValidateRefreshToken(context.Background(), 1, refresh)
	if !valid {
		t.Fatal("refresh токен должен быть валиден после логина")
	}

	if err := service.Logout(context.Background(), 1, refresh); err != nil {
		t.Fatalf("ошибка выхода: %v", err)
	}

	valid, _ = service.ValidateRefreshToken(context.Background(), 1, refresh)
	if valid {
		t.Fatal("refresh токен должен быть недействителен после выхода")
	}
}
