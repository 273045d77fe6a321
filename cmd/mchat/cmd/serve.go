package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mclog "github.com/msto63/mChat/core/log"
	mcgateway "github.com/msto63/mChat/gateway"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket gateway",
	Long: `Starts the WebSocket gateway so chat frontends can connect and
dispatch commands. The listen address comes from gateway.addr.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		printError("startup failed", err)
		return err
	}
	defer a.close()

	gw, err := mcgateway.New(a.service, mcgateway.Options{
		Logger:   a.logger,
		Addr:     a.cfg.Gateway.Addr,
		Messages: a.messages,
	})
	if err != nil {
		printError("gateway setup failed", err)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- gw.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			printError("gateway failed", err)
		}
		return err
	case sig := <-sigCh:
		a.logger.Info("shutting down", mclog.Fields{"signal": sig.String()})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return gw.Shutdown(ctx)
	}
}
