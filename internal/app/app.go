package app

import (
	"skycast/internal/config"
	"skycast/internal/db"
	"skycast/internal/handlers"
	"skycast/internal/repository"
	"skycast/internal/routes"
	"skycast/internal/services"

	"github.com/gorilla/mux"
)

// InitApp собирает приложение: подключение к БД, репозитории, сервисы,
// хендлеры и маршруты.
func InitApp(cfg *config.Config) (*mux.Router, error) {
	pool, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	emailTokenRepo := repository.NewEmailTokenRepository(pool)

	emailService := services.NewEmailService(cfg)
	services.StartEmailWorker(emailService)

	authService := services.NewAuthService(userRepo)
	emailTokenService := services.NewEmailTokenService(emailTokenRepo, userRepo)
	resetService := services.NewPasswordResetService(resetRepo, userRepo, emailService, cfg.FrontendURL)
	locationService := services.NewLocationService(locationRepo)

	authHandler := handlers.NewAuthHandler(authService, emailTokenService)
	passwordHandler := handlers.NewPasswordHandler(resetService, authService)
	locationHandler := handlers.NewLocationHandler(locationService)

	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, passwordHandler, locationHandler)

	return router, nil
}
