// Package server assembles the Kratos transport servers.
package server

import (
	"github.com/bionicotaku/lingo-services-greeting/internal/conf"
	"github.com/bionicotaku/lingo-services-greeting/internal/controllers"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server answering every request with the greeting.
func NewHTTPServer(c *conf.Server, greeter *controllers.GreeterHandler, telemetry *Telemetry, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Filter(normalizePath),
		http.Address(conf.GreetingAddr),
	}
	if hc := c.GetHTTP(); hc != nil {
		if hc.Network != "" {
			opts = append(opts, http.Network(hc.Network))
		}
		if hc.Addr != "" {
			opts = append(opts, http.Address(hc.Addr))
		}
		if hc.Timeout > 0 {
			opts = append(opts, http.Timeout(hc.Timeout.AsDuration()))
		}
	}

	ms := []middleware.Middleware{recovery.Recovery()}
	if m := telemetry.ServerMiddleware(); m != nil {
		ms = append(ms, m)
	}
	ms = append(ms, logging.Server(logger))

	srv := http.NewServer(opts...)
	// "OPTIONS *" must reach the greeter instead of net/http's built-in reply.
	srv.DisableGeneralOptionsHandler = true
	// Single catch-all route: no path can reach the mux NotFoundHandler.
	srv.HandlePrefix("/", greeter.Handler(ms...))
	return srv
}
