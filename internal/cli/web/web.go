package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/GustavoCaso/finbot/internal/auth"
	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/router"
	"github.com/GustavoCaso/finbot/internal/store"
)

const shutdownTimeout = 10 * time.Second

type webCommand struct {
	port string
}

func NewCommand() cli.Command {
	return &webCommand{}
}

func (c *webCommand) Description() string {
	return "Serves the JSON API"
}

func (c *webCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.port, "p", "", "port (overrides the configuration)")
}

func (c *webCommand) Run(env cli.Env) error {
	conf := *env.Config
	if c.port != "" {
		conf.Server.Port = c.port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Run(ctx, &conf, env.Store, env.Logger)
}

// NewServer wires the auth services and the router into an http.Server
// listening on the configured port.
func NewServer(conf *config.Config, s *store.Store, logger *logger.Logger) (*http.Server, error) {
	authService, err := auth.New()
	if err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}

	sessions := auth.NewSessions(conf.Auth.SessionDuration)
	handler, _ := router.New(s, authService, sessions, logger.WithComponent("router"))

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", conf.Server.Port),
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		Handler:           handler,
	}, nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context, conf *config.Config, s *store.Store, logger *logger.Logger) error {
	server, err := NewServer(conf, s, logger)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Serving API", "url", fmt.Sprintf("http://localhost:%s", conf.Server.Port))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err = <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
