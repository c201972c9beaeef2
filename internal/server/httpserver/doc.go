// Package httpserver provides the HTTP/HTTPS server of the plainsight API.
//
//   - POST /v1/conceal, /v1/reveal, /v1/inspect: multipart uploads
//   - GET /health, /ready: liveness and readiness
//   - GET /metrics: Prometheus exposition
//
// The API routes run behind Recover, RequestID, RateLimit, Metrics and
// AccessLog, in that order. TLS certificates are reloaded from disk
// through internal/infra/tlsroots.
package httpserver
