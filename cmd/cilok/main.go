// Command cilok is a conversational location assistant: it answers
// Indonesian free-text location questions on the terminal and can also
// expose the same resolution pipeline as a JSON API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"cilok/internal/ai"
	"cilok/internal/config"
	"cilok/internal/freemaps"
	"cilok/internal/geo"
	"cilok/internal/httpapi"
	"cilok/internal/resolve"
	"cilok/internal/session"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:          "cilok",
	Short:        "Conversational assistant for Indonesian location queries",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the interactive session (same as running with no command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolution pipeline as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(startCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// wiring holds everything both run modes need, built once from config.
type wiring struct {
	cfg       *config.Config
	logger    *slog.Logger
	completer ai.Completer
	provider  geo.Provider
	loop      *resolve.Loop
	closeAI   func()
}

func wire(ctx context.Context) (*wiring, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if debugFlag || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	w := &wiring{cfg: cfg, logger: logger, closeAI: func() {}}

	switch cfg.AISelection() {
	case config.AIBackendOpenRouter:
		w.completer = ai.NewOpenRouterClient(cfg.OpenRouterKey, cfg.AIModel)
	case config.AIBackendGemini:
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiKey, config.DefaultGeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini init: %w", err)
		}
		w.completer = client
		w.closeAI = client.Close
	}

	switch cfg.GeoSelection() {
	case geo.SelectionCommercial:
		provider, err := geo.NewGoogleProvider(cfg.GoogleMapsKey, cfg.Language, cfg.Country, logger)
		if err != nil {
			w.closeAI()
			return nil, fmt.Errorf("google maps init: %w", err)
		}
		w.provider = provider
	case geo.SelectionFree:
		w.provider = geo.NewFreeProvider(cfg.Country, cfg.Language, cfg.GeoTimeout, logger)
	}

	w.loop = resolve.New(w.completer, w.provider, logger)
	return w, nil
}

func runInteractive(ctx context.Context) error {
	w, err := wire(ctx)
	if err != nil {
		return err
	}
	defer w.closeAI()

	model := w.cfg.AIModel
	if w.cfg.AISelection() == config.AIBackendGemini {
		model = config.DefaultGeminiModel
	}

	sess := session.New(session.Deps{
		AI:          w.completer,
		Geo:         w.provider,
		Loop:        w.loop,
		Extras:      freemaps.NewClient(w.logger),
		Selection:   w.cfg.GeoSelection(),
		AIBackend:   w.cfg.AISelection(),
		Model:       model,
		MapboxKey:   w.cfg.MapboxKey,
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: true,
		Logger:      w.logger,
	})
	return sess.Run(ctx)
}

func runServe(ctx context.Context) error {
	w, err := wire(ctx)
	if err != nil {
		return err
	}
	defer w.closeAI()

	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewRouter(httpapi.Deps{
		Loop:     w.loop,
		Geo:      w.provider,
		Backend:  string(w.cfg.AISelection()),
		Provider: w.cfg.GeoSelection().String(),
		Logger:   w.logger,
	})

	server := &http.Server{Addr: w.cfg.HTTPAddr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	w.logger.Info("listening", "addr", w.cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
