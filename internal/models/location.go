package models

import "time"

// Location — избранная локация пользователя (город + ключ города у провайдера погоды).
type Location struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CityName  string    `json:"city_name"`
	CityKey   int       `json:"city_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
