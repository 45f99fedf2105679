package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/j2dx/j2dx/internal/bridge"
	"github.com/j2dx/j2dx/internal/log"
	"github.com/j2dx/j2dx/internal/server/api"
	"github.com/j2dx/j2dx/internal/server/api/handler"
	"github.com/j2dx/j2dx/internal/server/ws"
	"github.com/j2dx/j2dx/internal/session"
	"github.com/j2dx/j2dx/virtualpad"
)

type Server struct {
	ws.ServerConfig `embed:""`

	API        api.ServerConfig `embed:"" prefix:"api-" yaml:"api" toml:"api" json:"api"`
	UinputPath string           `help:"uinput device node (Linux)" default:"/dev/uinput" type:"path" env:"J2DX_UINPUT_PATH" yaml:"uinput-path" toml:"uinput-path" json:"uinput-path"`
}

// Run is called by Kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.serve(ctx, virtualpad.NewOpener(virtualpad.Options{UinputPath: s.UinputPath}), logger, rawLogger)
}

func (s *Server) serve(ctx context.Context, opener virtualpad.Opener, logger *slog.Logger, rawLogger log.RawLogger) error {
	logger.Info("Starting j2dx", "addr", s.Addr, "api", s.API.Addr, "driver", virtualpad.Driver())

	registry := session.NewRegistry(opener, logger)
	defer registry.CloseAll()
	b := bridge.New(registry, logger)

	if s.API.Addr != "" {
		apiSrv := api.New(b, s.API.Addr, s.API, logger)
		handler.RegisterAll(apiSrv)
		if err := apiSrv.Start(); err != nil {
			return err
		}
		defer apiSrv.Close()
	}

	err := ws.New(b, s.ServerConfig, logger, rawLogger).ListenAndServe(ctx)
	logger.Info("Shutting down", "sessions", registry.Len())
	return err
}
