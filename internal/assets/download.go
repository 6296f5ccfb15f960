package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
)

const maxImageSize = 10 << 20

// DownloaderConfig настраивает скачивание изображений
type DownloaderConfig struct {
	Concurrency       int           // одновременных загрузок
	RequestsPerSecond float64       // ограничение частоты запросов, 0 - без ограничения
	Timeout           time.Duration // таймаут одного запроса
	FailureThreshold  uint32        // подряд идущих отказов сервера до размыкания, 0 - без предохранителя
	Cooldown          time.Duration // сколько предохранитель остается разомкнутым
}

// DefaultDownloaderConfig возвращает настройки по умолчанию
func DefaultDownloaderConfig() DownloaderConfig {
	return DownloaderConfig{
		Concurrency:       4,
		RequestsPerSecond: 5,
		Timeout:           30 * time.Second,
		FailureThreshold:  5,
		Cooldown:          30 * time.Second,
	}
}

// Failure - неудачная загрузка
type Failure struct {
	Source Source
	Err    error
}

// Report - итог скачивания
type Report struct {
	Downloaded []Source
	Failed     []Failure
}

// Downloader скачивает изображения каталога, проверяя, что ответ декодируется как изображение.
type Downloader struct {
	client      *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[string]
	concurrency int
	log         *logger.Logger
}

// NewDownloader создает Downloader
func NewDownloader(cfg DownloaderConfig, log *logger.Logger) *Downloader {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	d := &Downloader{
		client:      &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(limit, 1),
		concurrency: cfg.Concurrency,
		log:         log.WithComponent("downloader"),
	}
	if cfg.FailureThreshold > 0 {
		d.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:    "image-download",
			Timeout: cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			},
			// Плохой ответ конкретного URL не говорит о недоступности сервера.
			IsSuccessful: func(err error) bool {
				return err == nil || !isServerFailure(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				d.log.Warnw("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return d
}

// statusError - ответ с кодом, отличным от 200.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// isServerFailure - сетевые ошибки и 5xx считаются отказом сервера.
func isServerFailure(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var ie *imageError
	return !errors.As(err, &ie)
}

// imageError - тело ответа не является изображением.
type imageError struct {
	err error
}

func (e *imageError) Error() string { return "not an image: " + e.err.Error() }

func (e *imageError) Unwrap() error { return e.err }

// Download скачивает изображения в <dir>/<kind>/<id>.png.
// Ошибка одного изображения не прерывает остальные: она попадает в Report.Failed.
// Ошибка возвращается только при отмене контекста.
func (d *Downloader) Download(ctx context.Context, dir string, sources []Source) (Report, error) {
	var (
		mu     sync.Mutex
		report Report
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			if err := d.limiter.Wait(ctx); err != nil {
				return err
			}

			path, err := d.fetchGuarded(ctx, dir, src)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				d.log.Warnw("Error downloading image", "id", src.ID, "url", src.URL, "error", err)
				report.Failed = append(report.Failed, Failure{Source: src, Err: err})
				return nil
			}
			d.log.Infow("Downloaded", "path", path)
			report.Downloaded = append(report.Downloaded, src)
			return nil
		})
	}

	err := g.Wait()
	return report, err
}

func (d *Downloader) fetchGuarded(ctx context.Context, dir string, src Source) (string, error) {
	if d.breaker == nil {
		return d.fetch(ctx, dir, src)
	}
	return d.breaker.Execute(func() (string, error) {
		return d.fetch(ctx, dir, src)
	})
}

func (d *Downloader) fetch(ctx context.Context, dir string, src Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	res, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", &statusError{code: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(body)); err != nil {
		return "", &imageError{err: err}
	}

	path := filepath.Join(dir, string(src.Kind), src.FileName())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
