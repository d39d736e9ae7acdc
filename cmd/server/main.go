// Package main boots the Kratos HTTP entrypoint of the greeting responder.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bionicotaku/lingo-services-greeting/internal/conf"
	loader "github.com/bionicotaku/lingo-services-greeting/internal/infrastructure/config_loader"
	loginfra "github.com/bionicotaku/lingo-services-greeting/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-greeting/internal/server"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name string
	// Version is the version of the compiled software.
	Version string
)

func newApp(meta loader.ServiceMetadata, logger log.Logger, hs *http.Server, admin *server.AdminServer) *kratos.App {
	servers := []transport.Server{hs}
	if admin != nil {
		servers = append(servers, admin.Server)
	}
	return kratos.New(
		kratos.ID(meta.InstanceID),
		kratos.Name(meta.Name),
		kratos.Version(meta.Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(servers...),
		// The listener is already bound once Run reaches AfterStart.
		kratos.AfterStart(announce(os.Stdout, hs)),
	)
}

func announce(w io.Writer, hs *http.Server) func(context.Context) error {
	return func(context.Context) error {
		addr := conf.GreetingAddr
		if u, err := hs.Endpoint(); err == nil {
			addr = u.Host
		}
		_, err := fmt.Fprintf(w, "Starting the Webserver on %s\n", addr)
		return err
	}
}

func main() {
	// Parse command-line flags (currently only -conf).
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	confPath, err := loader.ParseConfPath(fs, os.Args[1:])
	if err != nil {
		panic(err)
	}

	// Load bootstrap configuration and derive service metadata.
	bundle, err := loader.Build(loader.Params{
		ConfPath:       confPath,
		ServiceName:    Name,
		ServiceVersion: Version,
	})
	if err != nil {
		panic(err)
	}

	// Build the structured logger used by the entire application.
	loggr, err := loginfra.NewLogger(bundle.Service.LoggerConfig())
	if err != nil {
		panic(err)
	}

	// Assemble servers and handlers via Wire and create the Kratos app.
	app, cleanupApp, err := wireApp(bundle, loggr)
	if err != nil {
		panic(err)
	}
	defer cleanupApp()

	// Bind, announce, then block until a stop signal is received.
	// A bind failure surfaces here and aborts the process.
	if err := app.Run(); err != nil {
		panic(err)
	}
}
