package main

import (
	"context"
	"net"
	"os"

	"github.com/aretw0/qflow"
	"github.com/aretw0/qflow/internal/cli"
	"github.com/spf13/cobra"
)

var mockCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve an in-memory survey-definitions API",
	Long: `Starts a local stand-in for the survey-definitions API, with Prometheus
metrics on /metrics. Point other commands at it with --base-url.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)
		addr, _ := cmd.Flags().GetString("addr")

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.ServeMock(ctx, ln, cli.MockOptions{
			Token:   cfg.Token,
			Version: qflow.Version,
			Logger:  cli.NewLogger(cfg.Debug),
			Out:     os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)
	mockCmd.Flags().StringP("addr", "a", "127.0.0.1:8080", "Address to listen on")
}
