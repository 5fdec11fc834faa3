// Package bootstrap assembles the application from its components.
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-chatrelay-svc/internal/adapter/client"
	handler "go-chatrelay-svc/internal/adapter/http"
	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/relay"
	"go-chatrelay-svc/internal/session"
	"go-chatrelay-svc/internal/shared"
	"go-chatrelay-svc/internal/workspace"
)

// App holds the wired application.
type App struct {
	server *http.Server
	logger *zap.Logger
}

// NewApp wires logger → clients → session store → dispatcher → HTTP.
func NewApp(cfg *shared.Config) (*App, error) {
	logger := shared.NewLogger(cfg.Log)

	defaultProvider, ok := ai.ParseProvider(cfg.Providers.Default)
	if !ok {
		// validate() already rejects unknown names; this guards wiring drift.
		defaultProvider = ai.ProviderDeepSeek
	}
	sessions := session.NewStore(defaultProvider)

	deepseek := client.NewDeepSeekClient(cfg.Providers.DeepSeek, logger.Named("deepseek"))
	eden := client.NewEdenClient(cfg.Providers.Eden, logger.Named("eden"))

	clients := map[ai.Provider]ai.TextClient{
		ai.ProviderDeepSeek: deepseek,
		ai.ProviderEden:     eden,
	}

	var ws workspace.Client
	if cfg.Workspace.BaseURL != "" {
		notion := client.NewNotionClient(cfg.Workspace, logger.Named("workspace"))
		ws = client.NewCachedWorkspace(notion, cfg.Workspace.CacheTTL)
	}

	dispatcher := relay.NewDispatcher(
		sessions,
		clients,
		eden,
		ws,
		relay.StaticDetector{Tag: cfg.Relay.Locale},
		relay.NewFormatter(cfg.Relay.Locale),
		logger.Named("relay"),
		relay.Options{
			CallTimeout:   cfg.Relay.CallTimeout,
			EnrichContext: cfg.Relay.EnrichContext,
		},
	)

	mux := http.NewServeMux()
	mux.Handle("/webhook", handler.NewWebhookHandler(dispatcher, logger.Named("webhook")))
	mux.Handle("/health", handler.NewHealthHandler())

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{server: server, logger: logger}, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Sync() //nolint:errcheck

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
