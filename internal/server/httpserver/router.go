package httpserver

import (
	"net/http"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/core/service"
	"github.com/plainsight/plainsight-go/internal/imageio"
	"github.com/plainsight/plainsight-go/internal/server/httpserver/handler"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
	"github.com/plainsight/plainsight-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	Service *service.SecretService

	// Metrics receives HTTP metrics and serves /metrics. Defaults to
	// metric.Global().
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	MaxUploadBytes int64
	DefaultFormat  imageio.Format
	Version        string

	// RateLimit is the per-client request rate (requests/second); zero
	// disables rate limiting.
	RateLimit float64
	RateBurst int

	// TrustProxyHeaders identifies clients by X-Forwarded-For.
	TrustProxyHeaders bool

	// Ready reports readiness for GET /ready.
	Ready func() bool
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	reg := cfg.Metrics
	if reg == nil {
		reg = metric.Global()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(handler.Config{
		Service:        cfg.Service,
		Logger:         log,
		MaxUploadBytes: cfg.MaxUploadBytes,
		DefaultFormat:  cfg.DefaultFormat,
		Version:        cfg.Version,
		Ready:          cfg.Ready,
	})

	mux := http.NewServeMux()

	// Probes and metrics skip rate limiting and access logs.
	probe := Chain(h, WithLogger(log), Recover(), RequestID())
	mux.Handle("GET /health", probe)
	mux.Handle("GET /ready", probe)
	mux.Handle("GET /metrics", Chain(reg.Handler(), WithLogger(log), Recover()))

	// Order: Recover -> RequestID -> RateLimit -> Metrics -> AccessLog -> Handler
	api := []Middleware{WithLogger(log), Recover(), RequestID()}
	if cfg.RateLimit > 0 {
		api = append(api, RateLimit(NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxyHeaders)))
	}
	api = append(api, Metrics(reg), AccessLog())

	for op, pattern := range map[string]string{
		domain.OpConceal: "POST /v1/conceal",
		domain.OpReveal:  "POST /v1/reveal",
		domain.OpInspect: "POST /v1/inspect",
	} {
		mux.Handle(pattern, Chain(h, append(api, Operation(op))...))
	}

	return mux
}
