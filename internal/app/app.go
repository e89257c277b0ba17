package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/infrastructure/browser"
	"ReviewScanner/internal/infrastructure/daraz"
	"ReviewScanner/internal/infrastructure/sheets"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/ports"
	"ReviewScanner/internal/sentiment"
	"ReviewScanner/internal/server"
	"ReviewScanner/internal/usecase"
)

const shutdownGrace = 10 * time.Second

// Application wires configuration to adapters, the pipeline, and the HTTP
// lifecycle.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	fetcher *browser.Fetcher
	httpSrv *http.Server
}

// New builds a runnable application instance. The sheet sink is constructed
// once here; a missing spreadsheet configuration disables persistence rather
// than refusing to start, so the scrape surface stays usable.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := browser.NewFetcher(cfg.Browser.Headless(), cfg.Browser.NavigationTimeout(),
		baseLogger.With("component", "browser"))

	metadata := daraz.NewProductPage(fetcher, baseLogger.With("component", "product_page"))

	reviews := daraz.NewReviewClient(daraz.ReviewClientOptions{
		BaseURL:        cfg.Source.BaseURL,
		PageSize:       cfg.Source.PageSize,
		MaxPages:       cfg.Source.MaxPages,
		RequestsPerSec: cfg.Source.RequestsPerSec,
		Timeout:        cfg.Source.Timeout(),
	}, baseLogger.With("component", "review_client"))

	var sink ports.RowAppender
	if cfg.Sheets.SpreadsheetID != "" {
		appender, err := sheets.NewAppender(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, cfg.Sheets.CredentialsFile)
		if err != nil {
			baseLogger.Error("sheet sink unavailable, persistence disabled", "error", err)
		} else {
			sink = appender
		}
	} else {
		baseLogger.Warn("no spreadsheet configured, persistence disabled")
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Resolve:  daraz.ExtractItemID,
		Metadata: metadata,
		Reviews:  reviews,
		Scorer:   sentiment.NewScorer(),
		Sink:     sink,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	srv := server.New(pipeline, cfg.Server.AllowedOrigins, baseLogger.With("component", "http"))

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		fetcher: fetcher,
		httpSrv: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves HTTP until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully and closes the browser.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.httpSrv.Addr)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.fetcher.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := a.httpSrv.Shutdown(shutdownCtx)
	a.fetcher.Close()
	return err
}
