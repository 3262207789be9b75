package repository

import (
	"context"
	"skycast/internal/logger"
	"skycast/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Location, error) {
	logger.Log.Debug("Список локаций пользователя (repo)", zap.Int("user_id", userID))
	query := `
	SELECT id, user_id, city_name, city_key, created_at, updated_at
	FROM locations
	WHERE user_id = $1
	ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		logger.Log.Error("Ошибка получения локаций (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.UserID, &l.CityName, &l.CityKey, &l.CreatedAt, &l.UpdatedAt); err != nil {
			logger.Log.Error("Ошибка сканирования локации (repo)", zap.Error(err))
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM locations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта локаций (repo)", zap.Error(err))
	}
	return count, err
}

func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	logger.Log.Info("Создание локации (repo)", zap.Int("user_id", location.UserID), zap.String("city_name", location.CityName))
	query := `
	INSERT INTO locations (user_id, city_name, city_key)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, location.UserID, location.CityName, location.CityKey).
		Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		logger.Log.Error("Ошибка создания локации (repo)", zap.Error(err))
	}
	return err
}

func (r *LocationRepository) GetByID(ctx context.Context, id int) (*models.Location, error) {
	logger.Log.Debug("Получение локации по ID (repo)", zap.Int("location_id", id))
	query := `
	SELECT id, user_id, city_name, city_key, created_at, updated_at
	FROM locations
	WHERE id = $1`

	var l models.Location
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.UserID, &l.CityName, &l.CityKey, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) Update(ctx context.Context, id int, cityName string, cityKey int) error {
	logger.Log.Info("Обновление локации (repo)", zap.Int("location_id", id))
	query := `UPDATE locations SET city_name = $1, city_key = $2, updated_at = now() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, cityName, cityKey, id)
	if err != nil {
		logger.Log.Error("Ошибка обновления локации (repo)", zap.Error(err))
	}
	return err
}

func (r *LocationRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление локации (repo)", zap.Int("location_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления локации (repo)", zap.Error(err))
	}
	return err
}
