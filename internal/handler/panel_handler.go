package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ptz-panel/internal/backend"
	"ptz-panel/internal/controller"
	"ptz-panel/internal/types"
	"ptz-panel/internal/web"
)

// PanelHandler отдает экраны панели
type PanelHandler struct {
	logger      *zap.Logger
	coordinator *controller.Coordinator
	feedURL     string
	title       string
	poweredBy   string
}

// NewPanelHandler создает хендлер страниц. feedURL - источник живого видео для <img>.
func NewPanelHandler(
	logger *zap.Logger,
	coordinator *controller.Coordinator,
	feedURL, title, poweredBy string,
) *PanelHandler {
	return &PanelHandler{
		logger:      logger,
		coordinator: coordinator,
		feedURL:     feedURL,
		title:       title,
		poweredBy:   poweredBy,
	}
}

// RegisterRoutes регистрирует маршруты
func (h *PanelHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Index)
	router.POST("/configure", h.Configure)
}

// Index показывает экран конфигурации или экран управления
func (h *PanelHandler) Index(c *gin.Context) {
	if h.coordinator.Screen() == controller.ScreenControl {
		h.renderControl(c)
		return
	}

	screen := h.coordinator.ConfigScreen()
	h.renderConfig(c, http.StatusOK, screen.Form(), screen.Error())
}

// Configure обрабатывает отправку формы конфигурации
func (h *PanelHandler) Configure(c *gin.Context) {
	if h.coordinator.Screen() == controller.ScreenControl {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form types.CameraConfig
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, http.StatusBadRequest, form, err.Error())
		return
	}

	err := h.coordinator.ConfigScreen().Submit(c.Request.Context(), form)
	switch {
	case err == nil, errors.Is(err, controller.ErrAlreadyConfigured):
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, controller.ErrMissingField):
		h.renderConfig(c, http.StatusBadRequest, form, "Please fill in all fields.")
	case errors.Is(err, controller.ErrSubmitInFlight):
		h.renderConfig(c, http.StatusConflict, form, "Configuration already in progress.")
	case errors.Is(err, backend.ErrRequestFailed):
		h.renderConfig(c, http.StatusBadGateway, form, h.coordinator.ConfigScreen().Error())
	default:
		h.logger.Error("Unexpected configuration error", zap.Error(err))
		h.renderConfig(c, http.StatusInternalServerError, form, controller.ConfigFailedMessage)
	}
}

func (h *PanelHandler) renderConfig(c *gin.Context, status int, form types.CameraConfig, errMsg string) {
	if form.Port == "" {
		form.Port = controller.DefaultPort
	}
	c.HTML(status, web.ConfigTemplate, web.ConfigPage{
		CameraIP: form.CameraIP,
		Username: form.Username,
		Port:     form.Port,
		Error:    errMsg,
		Loading:  h.coordinator.ConfigScreen().Loading(),
	})
}

func (h *PanelHandler) renderControl(c *gin.Context) {
	zones := h.coordinator.ControlScreen().Zones()
	page := web.ControlPage{
		Title:     h.title,
		PoweredBy: h.poweredBy,
		FeedURL:   h.feedURL,
		Zones:     make([]web.ZoneView, 0, len(zones)),
		KeyZones:  make(map[string]int, len(zones)),
	}
	for _, z := range zones {
		page.Zones = append(page.Zones, web.ZoneView{ID: z.ID, Position: z.Position, Key: z.Key})
		page.KeyZones[z.Key] = z.ID
	}

	c.HTML(http.StatusOK, web.ControlTemplate, page)
}
