package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	helpy "github.com/haqury/helpy"
	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/controller"
	"ptz-panel/internal/types"
)

// APIHandler JSON API экранов для скриптов и клиентов без браузера
type APIHandler struct {
	logger      *zap.Logger
	coordinator *controller.Coordinator
}

// NewAPIHandler создает хендлер
func NewAPIHandler(logger *zap.Logger, coordinator *controller.Coordinator) *APIHandler {
	return &APIHandler{
		logger:      logger,
		coordinator: coordinator,
	}
}

// RegisterRoutes регистрирует маршруты
func (h *APIHandler) RegisterRoutes(router *gin.RouterGroup) {
	camera := router.Group("/camera")
	{
		camera.POST("/config", h.Configure)
		camera.GET("/state", h.GetState)
	}

	presets := router.Group("/presets")
	{
		presets.GET("", h.GetZones)
		presets.POST("/:id/goto", h.GotoPreset)
		presets.GET("/history", h.GetHistory)
	}
}

// Configure принимает конфигурацию камеры в JSON
func (h *APIHandler) Configure(c *gin.Context) {
	var req types.CameraConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, response("error", err.Error(), nil))
		return
	}

	err := h.coordinator.ConfigScreen().Submit(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response("ok", "Camera configured", map[string]string{
			"camera_ip": req.CameraIP,
			"port":      req.Port,
			"screen":    string(h.coordinator.Screen()),
		}))
	case errors.Is(err, controller.ErrMissingField):
		c.JSON(http.StatusBadRequest, response("error", err.Error(), nil))
	case errors.Is(err, controller.ErrSubmitInFlight), errors.Is(err, controller.ErrAlreadyConfigured):
		c.JSON(http.StatusConflict, response("error", err.Error(), nil))
	case errors.Is(err, backend.ErrRequestFailed):
		c.JSON(http.StatusBadGateway, response("error", h.coordinator.ConfigScreen().Error(), nil))
	default:
		c.JSON(http.StatusInternalServerError, response("error", err.Error(), nil))
	}
}

// GetState возвращает текущее состояние сеанса без пароля
func (h *APIHandler) GetState(c *gin.Context) {
	screen := h.coordinator.ConfigScreen()
	state := gin.H{
		"status":     "ok",
		"screen":     h.coordinator.Screen(),
		"configured": h.coordinator.Session().Configured(),
		"loading":    screen.Loading(),
		"error":      screen.Error(),
		"timestamp":  time.Now().Unix(),
	}
	if cfg, ok := h.coordinator.Session().Config(); ok {
		state["camera"] = gin.H{
			"camera_ip": cfg.CameraIP,
			"username":  cfg.Username,
			"port":      cfg.Port,
		}
	}
	c.JSON(http.StatusOK, state)
}

// GetZones возвращает сетку пресетов
func (h *APIHandler) GetZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"zones":     h.coordinator.ControlScreen().Zones(),
		"timestamp": time.Now().Unix(),
	})
}

// GotoPreset то же, что клик по зоне
func (h *APIHandler) GotoPreset(c *gin.Context) {
	if h.coordinator.Screen() != controller.ScreenControl {
		c.JSON(http.StatusConflict, response("error", "camera is not configured", nil))
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response("error", "preset id must be an integer", nil))
		return
	}

	err = h.coordinator.ControlScreen().Click(c.Request.Context(), id)
	meta := map[string]string{"preset_id": strconv.Itoa(id)}
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response("ok", "Preset command sent", meta))
	case errors.Is(err, controller.ErrUnknownZone):
		c.JSON(http.StatusNotFound, response("error", err.Error(), meta))
	default:
		c.JSON(http.StatusBadGateway, response("error", err.Error(), meta))
	}
}

// GetHistory возвращает журнал команд и статистику по зонам
func (h *APIHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history := h.coordinator.ControlScreen().History()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"commands":  history.Recent(limit),
		"stats":     history.GetAllStats(),
		"timestamp": time.Now().Unix(),
	})
}

func response(status, message string, metadata map[string]string) *helpy.ApiResponse {
	return &helpy.ApiResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().Unix(),
		Metadata:  metadata,
	}
}
