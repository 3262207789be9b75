package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"skycast/internal/logger"
	"skycast/internal/reqctx"
	"skycast/internal/services"
	"skycast/internal/utils/helpers"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

type locationRequest struct {
	CityName string `json:"city_name" validate:"required,min=1,max=100"`
	CityKey  int    `json:"city_key" validate:"required,gt=0"`
}

// List godoc
// @Summary Список избранных локаций пользователя
// @Tags locations
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Location
// @Failure 401 {string} string "Нет доступа"
// @Router /api/v1/locations [get]
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	locations, err := h.locationService.List(r.Context(), userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка локаций", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Не удалось получить список локаций")
		return
	}

	helpers.JSON(w, http.StatusOK, locations)
}

// Create godoc
// @Summary Добавить локацию в избранное
// @Description Лимит — 5 локаций на пользователя.
// @Tags locations
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body locationRequest true "Город и его ключ"
// @Success 201 {object} models.Location
// @Failure 403 {string} string "Достигнут лимит избранных локаций"
// @Router /api/v1/locations [post]
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Create", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка валидации локации", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.locationService.Create(r.Context(), userID, req.CityName, req.CityKey)
	if err != nil {
		if errors.Is(err, services.ErrLocationLimit) {
			helpers.Error(w, http.StatusForbidden, "Достигнут лимит избранных локаций (5)")
			return
		}
		logger.WithCtx(r.Context()).Error("Ошибка добавления локации", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Не удалось добавить локацию")
		return
	}

	helpers.JSON(w, http.StatusCreated, location)
}

// Show godoc
// @Summary Получить локацию по id
// @Tags locations
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID локации"
// @Success 200 {object} models.Location
// @Failure 404 {string} string "Локация не найдена"
// @Router /api/v1/locations/{id} [get]
func (h *LocationHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	id, err := locationID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный id")
		return
	}

	location, err := h.locationService.Get(r.Context(), userID, id)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "Локация не найдена")
		return
	}

	helpers.JSON(w, http.StatusOK, location)
}

// Update godoc
// @Summary Обновить локацию
// @Tags locations
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID локации"
// @Param input body locationRequest true "Новые данные локации"
// @Success 200 {object} models.Location
// @Failure 403 {string} string "Локация принадлежит другому пользователю"
// @Failure 404 {string} string "Локация не найдена"
// @Router /api/v1/locations/{id} [put]
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	id, err := locationID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный id")
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Update", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if err := validate.Struct(req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка валидации локации", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.locationService.Update(r.Context(), userID, id, req.CityName, req.CityKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			helpers.Error(w, http.StatusNotFound, "Локация не найдена")
		case errors.Is(err, services.ErrLocationForbidden):
			helpers.Error(w, http.StatusForbidden, "Нет доступа к этой локации")
		default:
			logger.WithCtx(r.Context()).Error("Ошибка обновления локации", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Не удалось обновить локацию")
		}
		return
	}

	helpers.JSON(w, http.StatusOK, location)
}

// Delete godoc
// @Summary Удалить локацию из избранного
// @Tags locations
// @Security ApiKeyAuth
// @Param id path int true "ID локации"
// @Success 200 {string} string "Локация удалена"
// @Failure 403 {string} string "Локация принадлежит другому пользователю"
// @Failure 404 {string} string "Локация не найдена"
// @Router /api/v1/locations/{id} [delete]
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Нет доступа")
		return
	}

	id, err := locationID(r)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный id")
		return
	}

	err = h.locationService.Delete(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			helpers.Error(w, http.StatusNotFound, "Локация не найдена")
		case errors.Is(err, services.ErrLocationForbidden):
			helpers.Error(w, http.StatusForbidden, "Нет доступа к этой локации")
		default:
			logger.WithCtx(r.Context()).Error("Ошибка удаления локации", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Не удалось удалить локацию")
		}
		return
	}

	helpers.JSON(w, http.StatusOK, "Локация удалена")
}

func locationID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
