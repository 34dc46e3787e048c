package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/browser"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that holds in-memory editing sessions and exports them to PDF.

Sessions live for the lifetime of the process. Rate limits are read from the
RATE_LIMIT_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	servePort       int
	serveCORSOrigin string
	serveNoExport   bool
	serveSessionTTL time.Duration
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCORSOrigin, "cors-origin", "", "Allowed CORS origin (default: *)")
	serveCmd.Flags().BoolVar(&serveNoExport, "no-export", false, "Run without Chrome; export endpoints answer 503")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", 2*time.Hour, "Drop sessions idle for longer than this (0 keeps them forever)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, func(explicit *config.Config) {
		if cmd.Flags().Changed("port") {
			explicit.Port = servePort
		}
		if cmd.Flags().Changed("cors-origin") {
			explicit.CORSOrigin = serveCORSOrigin
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srvCfg := server.Config{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
		SessionTTL: serveSessionTTL,
		RateLimit:  ratelimit.LoadConfig(),
		Creator:    "cv_builder " + version,
		Verbose:    cfg.Verbose,
	}

	if !serveNoExport {
		bc, err := browserConfig(cfg)
		if err != nil {
			return err
		}
		renderer, err := browser.NewRenderer(ctx, bc)
		if err != nil {
			return err
		}
		defer renderer.Close()
		srvCfg.OpenSurface = func(ctx context.Context, html string) (server.Surface, error) {
			page, err := renderer.Open(ctx, html)
			if err != nil {
				return nil, err
			}
			return page, nil
		}
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.Printf("Sessions expire after %v idle, export enabled: %t", serveSessionTTL, srvCfg.OpenSurface != nil)
	}
	return srv.Run(ctx)
}
