// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The server composes them with Chain in this order:
//
//	Recovery → RequestID → OpenTelemetry → Logging → Timeout → Handler
//
// Timeout sits innermost so its 504 is still seen by the logging and
// metrics layers.
package middleware

import "net/http"

// statusRecorder remembers the status and body size a handler produced.
// status stays zero until the handler commits the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func record(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w}
}

// Status reports the committed status, or 200 when the handler wrote nothing.
func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Committed reports whether headers have gone out.
func (r *statusRecorder) Committed() bool {
	return r.status != 0
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.Committed() {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.Committed() {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
