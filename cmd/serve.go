package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Rorical/flightai/internal/app"
	"github.com/Rorical/flightai/internal/logger"
	"github.com/Rorical/flightai/internal/server"
)

var (
	serveAddr    string
	serveOptions chatOptions
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat over HTTP",
	Long: heredoc.Doc(`
		Serve the FlightAI chat as a JSON API.

		Every request carries the full conversation history, so the server keeps no
		sessions. Routes:

		  GET  /healthz
		  POST /v1/chat        {"history": [...], "message": "..."}
		  POST /v1/translate   {"text": "..."}
		  GET  /v1/bookings
		  GET  /v1/tools`),
	Example: heredoc.Doc(`
		flightai serve --addr :8080
		curl -s localhost:8080/v1/chat -d '{"message": "How much is a ticket to London?"}'`),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		serveOptions.apply(cfg)
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		logr := logger.New(cfg.LogLevel, os.Stderr)
		if logr.IsLevelEnabled(logrus.DebugLevel) {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		components, err := app.BuildComponents(cfg, logr)
		if err != nil {
			log.Fatalf("Failed to build components: %v", err)
		}
		defer components.Close()

		deps := server.Deps{
			Bookings: components.Bookings,
			Registry: components.Registry,
		}
		if components.Turns != nil {
			deps.Turns = components.Turns
		} else {
			logr.Warn("no API key configured, /v1/chat will answer 503")
		}
		if components.Translator != nil {
			deps.Translator = components.Translator
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(deps, logr).Run(ctx, cfg.Server.Addr); err != nil {
			logr.WithError(err).Error("server stopped")
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to server.addr in the config)")
	serveOptions.addFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
