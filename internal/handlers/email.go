package handlers

import (
	"errors"
	"net/http"
	"skycast/internal/logger"
	"skycast/internal/reqctx"
	"skycast/internal/services"
	"skycast/internal/utils/helpers"
	"time"

	"go.uber.org/zap"
)

// resendCooldown — минимальный интервал между повторными письмами подтверждения.
const resendCooldown = 5 * time.Minute

// VerifyEmail godoc
// @Summary Подтвердить email по токену из письма
// @Tags email
// @Produce html
// @Param token query string true "Токен подтверждения"
// @Success 200 {string} string "Почта подтверждена"
// @Failure 400 {string} string "Неверный или истёкший токен"
// @Router /api/v1/email/verify [get]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(helpers.BuildVerifyErrorHTML("Токен не указан")))
		return
	}

	err := h.emailTokenService.ConfirmToken(r.Context(), token)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка подтверждения почты", zap.Error(err))
		msg := "Неверный токен подтверждения"
		if errors.Is(err, services.ErrTokenExpired) {
			msg = "Срок действия токена истёк. Запросите письмо повторно."
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(helpers.BuildVerifyErrorHTML(msg)))
		return
	}

	logger.WithCtx(r.Context()).Info("Почта подтверждена")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(helpers.BuildVerifySuccessHTML()))
}

// ResendVerificationEmail godoc
// @Summary Повторно отправить письмо подтверждения
// @Tags email
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {string} string "Письмо отправлено"
// @Failure 409 {string} string "Почта уже подтверждена"
// @Failure 429 {string} string "Слишком частые запросы"
// @Router /api/v1/email/resend [post]
func (h *AuthHandler) ResendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Пользователь не найден при повторной отправке", zap.Error(err))
		helpers.Error(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if user.Verified() {
		helpers.Error(w, http.StatusConflict, "Почта уже подтверждена")
		return
	}

	last, err := h.emailTokenService.GetLastTokenByUserID(r.Context(), userID)
	if err == nil && last != nil && time.Since(last.CreatedAt) < resendCooldown {
		logger.WithCtx(r.Context()).Warn("Повторная отправка письма запрошена слишком рано",
			zap.String("email", maskEmail(user.Email)))
		helpers.Error(w, http.StatusTooManyRequests, "Письмо уже отправлено. Повторите попытку через несколько минут.")
		return
	}

	if err := h.SendVerificationEmail(r.Context(), user); err != nil {
		helpers.Error(w, http.StatusInternalServerError, "Не удалось отправить письмо")
		return
	}

	logger.WithCtx(r.Context()).Info("Письмо подтверждения отправлено повторно",
		zap.String("email", maskEmail(user.Email)))
	helpers.JSON(w, http.StatusOK, "Письмо с подтверждением отправлено")
}
