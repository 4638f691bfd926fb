package middleware

import (
	"net/http"

	"github.com/vulchevd/web.io/internal/lang"
)

// Lang returns the language Locale resolved for r.
func Lang(r *http.Request) lang.Code {
	return LangFrom(r.Context())
}
