package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"ptz-panel/internal/endpoints"
	"ptz-panel/internal/types"
)

// DefaultChannel канал камеры, передаваемый в /camera_config
const DefaultChannel = 1

// ErrRequestFailed единый исход для сетевой ошибки и не-2xx ответа
var ErrRequestFailed = errors.New("backend request failed")

// StatusError ответ бэкенда с не-2xx статусом
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// Result успешный ответ бэкенда. Тело только логируется.
type Result struct {
	StatusCode int
	Body       string
}

// Client HTTP клиент бэкенда камеры
type Client struct {
	HTTP      *resty.Client
	Endpoints endpoints.Endpoints
	logger    *zap.Logger
}

// New создает клиента. timeout 0 оставляет таймаут HTTP клиента по умолчанию.
func New(ep endpoints.Endpoints, timeout time.Duration, logger *zap.Logger) *Client {
	r := resty.New()
	r.SetHeader("Accept", "application/json")
	if timeout > 0 {
		r.SetTimeout(timeout)
	}

	return &Client{
		HTTP:      r,
		Endpoints: ep,
		logger:    logger,
	}
}

// Configure отправляет учетные данные камеры на бэкенд
func (c *Client) Configure(ctx context.Context, cfg types.CameraConfig) (*Result, error) {
	payload := types.ConfigRequest{
		CameraIP: cfg.CameraIP,
		Username: cfg.Username,
		Password: cfg.Password,
		Channel:  DefaultChannel,
		Port:     cfg.Port,
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.Endpoints.CameraConfig)

	res, err := c.result(c.Endpoints.CameraConfig, resp, err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Config response",
		zap.String("camera_ip", cfg.CameraIP),
		zap.Int("status", res.StatusCode),
		zap.String("body", res.Body))

	return res, nil
}

// GotoPreset перемещает камеру в пресет presetID
func (c *Client) GotoPreset(ctx context.Context, presetID int) (*Result, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetQueryParam("preset_id", strconv.Itoa(presetID)).
		Get(c.Endpoints.GotoPreset)

	res, err := c.result(c.Endpoints.GotoPreset, resp, err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Preset response",
		zap.Int("preset_id", presetID),
		zap.Int("status", res.StatusCode),
		zap.String("body", res.Body))

	return res, nil
}

// Health запрашивает состояние бэкенда
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var body map[string]interface{}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(&body).
		Get(c.Endpoints.Health)

	if _, err := c.result(c.Endpoints.Health, resp, err); err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) result(endpoint string, resp *resty.Response, err error) (*Result, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequestFailed, endpoint, err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	return &Result{
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}, nil
}
