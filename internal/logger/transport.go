package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Transport stamps outgoing requests with a request ID and logs each round trip.
// The ID comes from the request context when present, otherwise a new one is generated.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = RequestIDFrom(r.Context())
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := WithRequestID(r.Context(), reqID)
		out := r.Clone(ctx)
		out.Header.Set(RequestIDHeader, reqID)

		log := FromCtx(ctx).With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		resp, err := next.RoundTrip(out)
		if err != nil {
			log.Warn("outgoing request failed",
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return nil, err
		}

		log.Info("outgoing request",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, nil
	})
}
