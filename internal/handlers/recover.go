package handlers

import (
	"fmt"
	"net/http"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
)

// Recover перехватывает панику обработчика и отвечает конвертом ошибки,
// чтобы процесс сервера продолжал работу.
func Recover(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Errorw("panic while serving request",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					writeError(w, fmt.Sprintf("internal error: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
