package services

import (
	"context"
	"errors"
	"skycast/internal/models"
	"skycast/internal/repository"
	"skycast/internal/utils"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
)

// Мок-хранилище токенов сброса. Мьютекс имитирует атомарность операций БД,
// чтобы конкурентные тесты проверяли контракт, а не гонки мока.
type mockResetRepo struct {
	mu      sync.Mutex
	records map[string]string // email -> токен
	users   *mockResetUsers
}

func newMockResetRepo(users *mockResetUsers) *mockResetRepo {
	return &mockResetRepo{records: make(map[string]string), users: users}
}

func (m *mockResetRepo) FindByEmail(_ context.Context, email string) (*models.PasswordResetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.records[email]
	if !ok {
		return nil, nil
	}
	return &models.PasswordResetRecord{Email: email, Token: token}, nil
}

func (m *mockResetRepo) InsertOrGet(_ context.Context, email, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.records[email]; ok {
		return existing, nil
	}
	m.records[email] = token
	return token, nil
}

func (m *mockResetRepo) Consume(_ context.Context, email, token, passwordHash string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[email]
	if !ok || existing != token {
		return 0, repository.ErrNoReset
	}

	// Реальное хранилище работает в транзакции: при отсутствии пользователя
	// удаление откатывается, запись остаётся.
	user, ok := m.users.byEmail[email]
	if !ok {
		return 0, repository.ErrResetUserMissing
	}
	delete(m.records, email)
	user.PasswordHash = passwordHash
	return user.ID, nil
}

func (m *mockResetRepo) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, email)
	return nil
}

func (m *mockResetRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type mockResetUsers struct {
	byEmail map[string]*models.User
}

func (m *mockResetUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockResetUsers) UpdatePasswordHash(_ context.Context, userID int, passwordHash string) error {
	for _, u := range m.byEmail {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockResetMailer struct {
	mu    sync.Mutex
	links []string
}

func (m *mockResetMailer) SendPasswordReset(_ context.Context, to, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, resetLink)
	return nil
}

func newResetFixture() (*PasswordResetService, *mockResetRepo, *mockResetUsers, *mockResetMailer) {
	hash, _ := utils.HashPassword("oldpassword")
	users := &mockResetUsers{byEmail: map[string]*models.User{
		"ivan@example.com": {ID: 1, Email: "ivan@example.com", PasswordHash: hash},
	}}
	repo := newMockResetRepo(users)
	mailer := &mockResetMailer{}
	service := NewPasswordResetService(repo, users, mailer, "https://skycast.example.com")
	return service, repo, users, mailer
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	service, repo, _, mailer := newResetFixture()

	err := service.RequestReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("ожидалась ErrEmailNotFound, получено: %v", err)
	}
	if repo.count() != 0 {
		t.Fatal("для незнакомого email не должно создаваться записей")
	}
	if len(mailer.links) != 0 {
		t.Fatal("для незнакомого email письмо не должно отправляться")
	}
}

func TestRequestReset_CreatesToken(t *testing.T) {
	service, repo, _, mailer := newResetFixture()

	if err := service.RequestReset(context.Background(), "ivan@example.com"); err != nil {
		t.Fatalf("ошибка запроса сброса: %v", err)
	}

	rec, _ := repo.FindByEmail(context.Background(), "ivan@example.com")
	if rec == nil {
		t.Fatal("запись сброса не создана")
	}
	if len(rec.Token) != utils.ResetTokenLength {
		t.Fatalf("длина токена %d, ожидалось %d", len(rec.Token), utils.ResetTokenLength)
	}
	if len(mailer.links) != 1 || !strings.Contains(mailer.links[0], rec.Token) {
		t.Fatal("ссылка в письме не содержит токен")
	}
}

func TestRequestReset_Idempotent(t *testing.T) {
	service, repo, _, mailer := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("первый запрос: %v", err)
	}
	if err := service.RequestReset(ctx, "Ivan@Example.com "); err != nil {
		t.Fatalf("повторный запрос: %v", err)
	}

	if repo.count() != 1 {
		t.Fatalf("живая запись должна быть ровно одна, записей: %d", repo.count())
	}
	if len(mailer.links) != 2 {
		t.Fatalf("оба запроса должны отправить письмо, писем: %d", len(mailer.links))
	}
	if mailer.links[0] != mailer.links[1] {
		t.Fatal("повторный запрос должен переиспользовать тот же токен")
	}
}

func TestConsumeReset_Success(t *testing.T) {
	service, repo, users, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}
	rec, _ := repo.FindByEmail(ctx, "ivan@example.com")

	if err := service.ConsumeReset(ctx, "ivan@example.com", rec.Token, "newpassword"); err != nil {
		t.Fatalf("ошибка сброса пароля: %v", err)
	}

	if repo.count() != 0 {
		t.Fatal("погашенный токен должен быть удалён")
	}
	user := users.byEmail["ivan@example.com"]
	if !utils.CheckPasswordHash("newpassword", user.PasswordHash) {
		t.Fatal("новый пароль не сохранён")
	}
	if utils.CheckPasswordHash("oldpassword", user.PasswordHash) {
		t.Fatal("старый пароль всё ещё действует")
	}
}

func TestConsumeReset_WrongToken(t *testing.T) {
	service, repo, users, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}

	err := service.ConsumeReset(ctx, "ivan@example.com", "definitely-wrong-token", "newpassword")
	if !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("ожидалась ErrTokenMismatch, получено: %v", err)
	}

	// Отказ не должен ничего менять: ни запись, ни пароль.
	if repo.count() != 1 {
		t.Fatal("запись сброса не должна удаляться при неверном токене")
	}
	if !utils.CheckPasswordHash("oldpassword", users.byEmail["ivan@example.com"].PasswordHash) {
		t.Fatal("пароль не должен меняться при неверном токене")
	}
}

func TestConsumeReset_SecondUseFails(t *testing.T) {
	service, repo, _, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}
	rec, _ := repo.FindByEmail(ctx, "ivan@example.com")

	if err := service.ConsumeReset(ctx, "ivan@example.com", rec.Token, "newpassword"); err != nil {
		t.Fatalf("первое гашение: %v", err)
	}

	err := service.ConsumeReset(ctx, "ivan@example.com", rec.Token, "anotherpassword")
	if !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("повторное гашение должно давать ErrTokenMismatch, получено: %v", err)
	}
}

func TestConsumeReset_ShortPassword(t *testing.T) {
	service, repo, _, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}
	rec, _ := repo.FindByEmail(ctx, "ivan@example.com")

	err := service.ConsumeReset(ctx, "ivan@example.com", rec.Token, "123")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("ожидалась ErrPasswordTooShort, получено: %v", err)
	}
	if repo.count() != 1 {
		t.Fatal("токен не должен гаситься при невалидном пароле")
	}
}

func TestConsumeReset_DanglingRecord(t *testing.T) {
	service, repo, _, _ := newResetFixture()
	ctx := context.Background()

	// Запись сброса без пользователя — повреждение данных, а не неверный токен.
	repo.records["ghost@example.com"] = "dangling-token"

	err := service.ConsumeReset(ctx, "ghost@example.com", "dangling-token", "newpassword")
	if !errors.Is(err, ErrResetCorrupted) {
		t.Fatalf("ожидалась ErrResetCorrupted, получено: %v", err)
	}
	if errors.Is(err, ErrTokenMismatch) {
		t.Fatal("повреждение данных не должно маскироваться под ErrTokenMismatch")
	}
	// Транзакция откатилась — запись не погашена.
	if _, ok := repo.records["ghost@example.com"]; !ok {
		t.Fatal("запись не должна удаляться при откате транзакции")
	}
}

func TestConsumeReset_Concurrent(t *testing.T) {
	service, repo, _, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}
	rec, _ := repo.FindByEmail(ctx, "ivan@example.com")

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- service.ConsumeReset(ctx, "ivan@example.com", rec.Token, "newpassword")
		}()
	}
	wg.Wait()
	close(results)

	var successes, mismatches int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrTokenMismatch):
			mismatches++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("успешным должен быть ровно один вызов, успехов: %d", successes)
	}
	if mismatches != workers-1 {
		t.Fatalf("остальные вызовы должны получить ErrTokenMismatch, получили: %d", mismatches)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	service, repo, users, mailer := newResetFixture()
	ctx := context.Background()

	// Запрос и повторный запрос: один и тот же токен.
	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}
	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("повторный запрос: %v", err)
	}
	if mailer.links[0] != mailer.links[1] {
		t.Fatal("токен должен переиспользоваться до гашения")
	}

	first, _ := repo.FindByEmail(ctx, "ivan@example.com")
	if err := service.ConsumeReset(ctx, "ivan@example.com", first.Token, "newpassword"); err != nil {
		t.Fatalf("гашение: %v", err)
	}
	if !utils.CheckPasswordHash("newpassword", users.byEmail["ivan@example.com"].PasswordHash) {
		t.Fatal("пароль не обновлён")
	}

	// Новый запрос после гашения выдаёт другой токен.
	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос после гашения: %v", err)
	}
	second, _ := repo.FindByEmail(ctx, "ivan@example.com")
	if second.Token == first.Token {
		t.Fatal("после гашения должен выдаваться новый токен")
	}

	// Старый токен больше не работает.
	err := service.ConsumeReset(ctx, "ivan@example.com", first.Token, "anotherpassword")
	if !errors.Is(err, ErrTokenMismatch) {
		t.Fatalf("старый токен должен отвергаться, получено: %v", err)
	}
}

func TestChangePassword_ClearsResetToken(t *testing.T) {
	service, repo, users, _ := newResetFixture()
	ctx := context.Background()

	if err := service.RequestReset(ctx, "ivan@example.com"); err != nil {
		t.Fatalf("запрос сброса: %v", err)
	}

	user := users.byEmail["ivan@example.com"]
	if err := service.ChangePassword(ctx, user, "oldpassword", "newpassword"); err != nil {
		t.Fatalf("смена пароля: %v", err)
	}

	if repo.count() != 0 {
		t.Fatal("смена пароля должна гасить висящий токен сброса")
	}
	if !utils.CheckPasswordHash("newpassword", user.PasswordHash) {
		t.Fatal("новый пароль не сохранён")
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	service, _, users, _ := newResetFixture()

	user := users.byEmail["ivan@example.com"]
	err := service.ChangePassword(context.Background(), user, "wrongpassword", "newpassword")
	if !errors.Is(err, ErrOldPasswordMismatch) {
		t.Fatalf("ожидалась ErrOldPasswordMismatch, получено: %v", err)
	}
	if !utils.CheckPasswordHash("oldpassword", user.PasswordHash) {
		t.Fatal("пароль не должен меняться при неверном старом пароле")
	}
}
