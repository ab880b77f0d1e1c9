package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// responseRecorder captures status and body so error responses can be
// rewritten as JSON.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       string
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) isJSON() bool {
	return strings.HasPrefix(r.Header().Get("Content-Type"), "application/json")
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	// Handlers already emitting JSON errors pass through untouched;
	// only plain-text error bodies (router 404/405, http.Error) are
	// captured for rewriting.
	if r.statusCode >= 400 && !r.isJSON() {
		r.body = strings.TrimSpace(string(b))
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler normalizes plain-text error responses to JSON and
// converts panics to a JSON 500.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, statusCode: 200}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v", err)
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(rec.ResponseWriter).Encode(ErrorResponse{Error: "Internal Server Error"})
			} else if rec.statusCode >= 400 && !rec.isJSON() {
				rec.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(ErrorResponse{Error: rec.body})
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
