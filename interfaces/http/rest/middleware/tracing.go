package middleware

import (
	"net/http"

	"talentnet-backend/pkg/observability"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Tracing opens a trace segment per request and annotates it with the
// request ID so traces join up with the structured logs.
func Tracing(tracer *observability.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			if seg != nil {
				defer seg.Close(nil)
			}
			if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
				tracer.AddAnnotation(ctx, "request_id", reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
