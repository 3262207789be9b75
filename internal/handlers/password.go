package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"skycast/internal/logger"
	"skycast/internal/reqctx"
	"skycast/internal/services"
	"skycast/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	resetService *services.PasswordResetService
	authService  *services.AuthService
}

func NewPasswordHandler(resetService *services.PasswordResetService, authService *services.AuthService) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
		authService:  authService,
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Token                string `json:"token" validate:"required"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type changePasswordRequest struct {
	OldPassword          string `json:"old_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Forgot godoc
// @Summary Запросить сброс пароля
// @Description Отправляет письмо со ссылкой для сброса. Повторный запрос возвращает ту же ссылку, пока токен не использован.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotPasswordRequest true "Email пользователя"
// @Success 200 {string} string "Письмо отправлено"
// @Failure 404 {string} string "Email не найден"
// @Router /api/v1/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Forgot", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка валидации в Forgot", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.resetService.RequestReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailNotFound) {
			helpers.Error(w, http.StatusNotFound, "Пользователь с таким email не найден")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка запроса сброса пароля",
			zap.String("email", maskEmail(req.Email)),
			zap.Error(err),
		)
		helpers.Error(w, http.StatusInternalServerError, "Не удалось отправить письмо")
		return
	}

	helpers.JSON(w, http.StatusOK, "Письмо со ссылкой для сброса пароля отправлено")
}

// Reset godoc
// @Summary Установить новый пароль по токену
// @Description Гасит токен сброса и сохраняет новый пароль. Токен одноразовый.
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetPasswordRequest true "Email, токен и новый пароль"
// @Success 201 {string} string "Пароль изменён"
// @Failure 400 {string} string "Ошибка валидации"
// @Failure 403 {string} string "Неверный email или токен"
// @Router /api/v1/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Reset", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка валидации в Reset", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.resetService.ConsumeReset(r.Context(), req.Email, req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenMismatch):
			helpers.Error(w, http.StatusForbidden, "Неверный email или токен")
		case errors.Is(err, services.ErrPasswordTooShort):
			helpers.Error(w, http.StatusBadRequest, err.Error())
		default:
			logger.WithCtx(r.Context()).Error("Ошибка сброса пароля",
				zap.String("email", maskEmail(req.Email)),
				zap.Error(err),
			)
			helpers.Error(w, http.StatusInternalServerError, "Не удалось сбросить пароль")
		}
		return
	}

	helpers.JSON(w, http.StatusCreated, "Пароль успешно изменён")
}

// Change godoc
// @Summary Сменить пароль (авторизованный пользователь)
// @Tags password
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body changePasswordRequest true "Старый и новый пароль"
// @Success 200 {string} string "Пароль изменён"
// @Failure 400 {string} string "Старый пароль неверен"
// @Failure 401 {string} string "Нет доступа"
// @Router /api/v1/password/change [post]
func (h *PasswordHandler) Change(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Change", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка валидации в Change", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Пользователь не найден при смене пароля", zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := h.resetService.ChangePassword(r.Context(), user, req.OldPassword, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			helpers.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrOldPasswordMismatch):
			helpers.Error(w, http.StatusBadRequest, err.Error())
		default:
			logger.WithCtx(r.Context()).Error("Ошибка смены пароля", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Не удалось изменить пароль")
		}
		return
	}

	helpers.JSON(w, http.StatusOK, "Пароль успешно изменён")
}
