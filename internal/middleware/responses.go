package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// Error writes a plain-text status page. Server errors are logged with the
// request-scoped logger.
func Error(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError && err != nil {
		Logger(r.Context()).Error("request failed", zap.Int("status", code), zap.Error(err))
	}
	http.Error(w, http.StatusText(code), code)
}
