package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigaclone/pagesmoke/httpz"
	"github.com/taigaclone/pagesmoke/server"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stand-in application",
	Long: `Serve a stand-in for the agile board application.

It answers the same routes with the same page text as the real application so the smoke suite can be checked
without it.`,
	Args: cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		listenAddress, _ := cmd.Flags().GetString("listen-address")
		logFormat, _ := cmd.Flags().GetString("log-format")

		logger := setupLogger(logFormat, os.Stdout)

		processCtx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
		defer stop()
		go func() {
			<-processCtx.Done()
			stop() // Only listen for one interrupt. If another interrupt signal is received allow it to terminate the program.
			logger.Info().Msg("shutdown signal received")
		}()

		handler, err := httpz.NewHandler(logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Could not create handler")
		}

		srv, err := server.NewServer(listenAddress, handler, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Could not create web server")
		}

		g, gctx := errgroup.WithContext(processCtx)
		g.Go(func() error {
			return srv.Serve()
		})
		g.Go(func() error {
			<-gctx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		})

		err = g.Wait()
		if err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen-address", "l", "127.0.0.1:3000", "The address to listen on for HTTP requests.")
	serveCmd.Flags().String("log-format", "json", "Log format (json or console)")
}
