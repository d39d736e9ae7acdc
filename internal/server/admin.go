package server

import (
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-greeting/internal/conf"

	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AdminServer serves metrics and probes on a listener separate from the
// greeting listener.
type AdminServer struct {
	*http.Server
}

// NewAdminServer returns nil when no admin address is configured.
func NewAdminServer(c *conf.Server, telemetry *Telemetry) *AdminServer {
	ac := c.GetAdmin()
	if ac == nil || ac.Addr == "" {
		return nil
	}

	opts := []http.ServerOption{
		http.Address(ac.Addr),
	}
	if ac.Timeout > 0 {
		opts = append(opts, http.Timeout(ac.Timeout.AsDuration()))
	}
	srv := http.NewServer(opts...)

	srv.Handle("/healthz", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	}))

	srv.Handle("/readyz", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		// 无外部依赖，监听成功即就绪。
		w.WriteHeader(stdhttp.StatusOK)
	}))

	if telemetry != nil && telemetry.PrometheusRegistry != nil {
		srv.Handle("/metrics", promhttp.HandlerFor(telemetry.PrometheusRegistry, promhttp.HandlerOpts{}))
	}
	return &AdminServer{Server: srv}
}
