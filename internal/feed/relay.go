package feed

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mattn/go-mjpeg"
	"go.uber.org/zap"
)

// ReconnectDelay пауза перед повторным подключением к потоку бэкенда
const ReconnectDelay = 2 * time.Second

// Relay ретранслирует MJPEG поток бэкенда браузерам через панель.
// Подключение к бэкенду открывается при первом зрителе.
type Relay struct {
	source string
	client *http.Client
	logger *zap.Logger
	stream *mjpeg.Stream

	startOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewRelay создает ретранслятор для URL /video_feed бэкенда
func NewRelay(source string, logger *zap.Logger) *Relay {
	ctx, cancel := context.WithCancel(context.Background())
	return &Relay{
		source: source,
		client: &http.Client{},
		logger: logger,
		stream: mjpeg.NewStream(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ServeHTTP отдает поток клиенту до его отключения
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.startOnce.Do(func() {
		r.wg.Add(1)
		go r.run()
	})
	r.stream.ServeHTTP(w, req)
}

// Close останавливает чтение бэкенда и отключает зрителей
func (r *Relay) Close() error {
	r.cancel()
	r.wg.Wait()
	return r.stream.Close()
}

func (r *Relay) run() {
	defer r.wg.Done()

	for {
		err := r.pump()
		if r.ctx.Err() != nil {
			return
		}
		r.logger.Warn("Video feed relay interrupted",
			zap.String("source", r.source),
			zap.Error(err))

		select {
		case <-r.ctx.Done():
			return
		case <-time.After(ReconnectDelay):
		}
	}
}

// pump читает кадры из одного соединения с бэкендом
func (r *Relay) pump() error {
	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, r.source, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("video feed status: %d", resp.StatusCode)
	}

	dec, err := mjpeg.NewDecoderFromResponse(resp)
	if err != nil {
		return fmt.Errorf("video feed decoder: %w", err)
	}

	r.logger.Info("Video feed relay connected", zap.String("source", r.source))

	for {
		frame, err := dec.DecodeRaw()
		if err != nil {
			return err
		}
		if err := r.stream.Update(frame); err != nil {
			r.logger.Debug("Video feed update failed", zap.Error(err))
		}
	}
}
