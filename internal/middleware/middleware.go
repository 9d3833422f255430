package middleware

import (
	"log"
	"net/http"
	"time"

	"greetgo/internal/util"

	"github.com/google/uuid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Logging tags each request with an ID, echoes it in X-Request-Id,
// and writes one access-log line once the handler returns.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Printf("%s %s %s %d %s id=%s",
			util.RealClientIP(r, ""), r.Method, r.URL.Path,
			rec.status, time.Since(start), id)
	})
}
