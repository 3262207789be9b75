package services

import (
	"context"
	"errors"
	"skycast/internal/models"
	"testing"
)

type mockLocationRepo struct {
	locations map[int]*models.Location
	nextID    int
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[int]*models.Location), nextID: 1}
}

func (m *mockLocationRepo) ListByUser(_ context.Context, userID int) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range m.locations {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLocationRepo) CountByUser(_ context.Context, userID int) (int, error) {
	count := 0
	for _, l := range m.locations {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockLocationRepo) Create(_ context.Context, location *models.Location) error {
	location.ID = m.nextID
	m.nextID++
	m.locations[location.ID] = location
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id int) (*models.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

func (m *mockLocationRepo) Update(_ context.Context, id int, cityName string, cityKey int) error {
	l, ok := m.locations[id]
	if !ok {
		return errors.New("not found")
	}
	l.CityName = cityName
	l.CityKey = cityKey
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id int) error {
	delete(m.locations, id)
	return nil
}

func TestCreateLocation_Limit(t *testing.T) {
	repo := newMockLocationRepo()
	service := NewLocationService(repo)
	ctx := context.Background()

	for i := 0; i < MaxFavoriteLocations; i++ {
		if _, err := service.Create(ctx, 1, "Москва", 294021+i); err != nil {
			t.Fatalf("добавление локации %d: %v", i+1, err)
		}
	}

	_, err := service.Create(ctx, 1, "Казань", 295954)
	if !errors.Is(err, ErrLocationLimit) {
		t.Fatalf("ожидалась ErrLocationLimit, получено: %v", err)
	}

	// Лимит на пользователя, а не глобальный.
	if _, err := service.Create(ctx, 2, "Казань", 295954); err != nil {
		t.Fatalf("лимит не должен касаться другого пользователя: %v", err)
	}
}

func TestCreateLocation_FreesSlotAfterDelete(t *testing.T) {
	repo := newMockLocationRepo()
	service := NewLocationService(repo)
	ctx := context.Background()

	var last *models.Location
	for i := 0; i < MaxFavoriteLocations; i++ {
		l, err := service.Create(ctx, 1, "Москва", 294021+i)
		if err != nil {
			t.Fatalf("добавление локации: %v", err)
		}
		last = l
	}

	if err := service.Delete(ctx, 1, last.ID); err != nil {
		t.Fatalf("удаление локации: %v", err)
	}

	if _, err := service.Create(ctx, 1, "Сочи", 294864); err != nil {
		t.Fatalf("после удаления слот должен освободиться: %v", err)
	}
}

func TestGetLocation_ForeignHidden(t *testing.T) {
	repo := newMockLocationRepo()
	service := NewLocationService(repo)
	ctx := context.Background()

	l, err := service.Create(ctx, 1, "Москва", 294021)
	if err != nil {
		t.Fatalf("добавление локации: %v", err)
	}

	// Чужая локация выглядит как несуществующая.
	_, err = service.Get(ctx, 2, l.ID)
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("ожидалась ErrLocationNotFound, получено: %v", err)
	}
}

func TestUpdateLocation_Foreign(t *testing.T) {
	repo := newMockLocationRepo()
	service := NewLocationService(repo)
	ctx := context.Background()

	l, err := service.Create(ctx, 1, "Москва", 294021)
	if err != nil {
		t.Fatalf("добавление локации: %v", err)
	}

	_, err = service.Update(ctx, 2, l.ID, "Питер", 295212)
	if !errors.Is(err, ErrLocationForbidden) {
		t.Fatalf("ожидалась ErrLocationForbidden, получено: %v", err)
	}
	if repo.locations[l.ID].CityName != "Москва" {
		t.Fatal("чужое обновление не должно менять локацию")
	}
}

func TestDeleteLocation_Foreign(t *testing.T) {
	repo := newMockLocationRepo()
	service := NewLocationService(repo)
	ctx := context.Background()

	l, err := service.Create(ctx, 1, "Москва", 294021)
	if err != nil {
		t.Fatalf("добавление локации: %v", err)
	}

	err = service.Delete(ctx, 2, l.ID)
	if !errors.Is(err, ErrLocationForbidden) {
		t.Fatalf("ожидалась ErrLocationForbidden, получено: %v", err)
	}
	if _, ok := repo.locations[l.ID]; !ok {
		t.Fatal("чужое удаление не должно трогать локацию")
	}
}
