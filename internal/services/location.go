package services

import (
	"context"
	"errors"
	"skycast/internal/logger"
	"skycast/internal/models"

	"go.uber.org/zap"
)

// MaxFavoriteLocations — жёсткий лимит избранных локаций на пользователя.
const MaxFavoriteLocations = 5

var (
	ErrLocationLimit     = errors.New("достигнут лимит избранных локаций")
	ErrLocationNotFound  = errors.New("локация не найдена")
	ErrLocationForbidden = errors.New("локация принадлежит другому пользователю")
)

type LocationRepo interface {
	ListByUser(ctx context.Context, userID int) ([]*models.Location, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id int) (*models.Location, error)
	Update(ctx context.Context, id int, cityName string, cityKey int) error
	Delete(ctx context.Context, id int) error
}

type LocationService struct {
	repo LocationRepo
}

func NewLocationService(repo LocationRepo) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) List(ctx context.Context, userID int) ([]*models.Location, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *LocationService) Create(ctx context.Context, userID int, cityName string, cityKey int) (*models.Location, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта локаций (service)", zap.Error(err))
		return nil, err
	}
	if count >= MaxFavoriteLocations {
		logger.Log.Warn("Лимит локаций исчерпан (service)", zap.Int("user_id", userID))
		return nil, ErrLocationLimit
	}

	location := &models.Location{
		UserID:   userID,
		CityName: cityName,
		CityKey:  cityKey,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	logger.Log.Info("Локация добавлена (service)", zap.Int("user_id", userID), zap.Int("location_id", location.ID))
	return location, nil
}

// Get не различает "нет такой локации" и "чужая локация" — в обоих случаях
// ErrLocationNotFound, чтобы не раскрывать чужие id.
func (s *LocationService) Get(ctx context.Context, userID, id int) (*models.Location, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrLocationNotFound
	}
	if location.UserID != userID {
		return nil, ErrLocationNotFound
	}
	return location, nil
}

func (s *LocationService) Update(ctx context.Context, userID, id int, cityName string, cityKey int) (*models.Location, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrLocationNotFound
	}
	if location.UserID != userID {
		logger.Log.Warn("Попытка изменить чужую локацию (service)", zap.Int("user_id", userID), zap.Int("location_id", id))
		return nil, ErrLocationForbidden
	}

	if err := s.repo.Update(ctx, id, cityName, cityKey); err != nil {
		return nil, err
	}
	location.CityName = cityName
	location.CityKey = cityKey
	return location, nil
}

func (s *LocationService) Delete(ctx context.Context, userID, id int) error {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrLocationNotFound
	}
	if location.UserID != userID {
		logger.Log.Warn("Попытка удалить чужую локацию (service)", zap.Int("user_id", userID), zap.Int("location_id", id))
		return ErrLocationForbidden
	}
	return s.repo.Delete(ctx, id)
}
