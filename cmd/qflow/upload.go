package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/qflow"
	"github.com/aretw0/qflow/internal/cli"
	"github.com/aretw0/qflow/internal/presentation/progress"
	"github.com/aretw0/qflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <definition>",
	Short: "Create a survey from a definition",
	Long: `Creates the survey, its blocks and questions, and finally its flow. If a call
fails the partially created survey is left in place and its ID is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)
		quiet, _ := cmd.Flags().GetBool("quiet")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		logger := cli.NewLogger(cfg.Debug)

		reg := prometheus.NewRegistry()
		m := observability.NewMetrics(reg)
		api, err := cli.NewClient(cfg, logger, m)
		if err != nil {
			return err
		}

		opts := []qflow.Option{qflow.WithLogger(logger), qflow.WithMetrics(m)}
		if cfg.Debug {
			opts = append(opts, qflow.WithLifecycleHooks(cli.DebugHooks(logger)))
		}
		if !quiet {
			opts = append(opts, qflow.WithProgress(progress.New(os.Stderr)))
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		id, err := cli.Upload(ctx, api, args[0], opts...)
		if metricsFile != "" {
			if werr := cli.WriteMetrics(metricsFile, reg); werr != nil {
				logger.Warn("failed to write metrics", "path", metricsFile, "error", werr)
			}
		}
		if err != nil {
			if id != "" {
				cli.PrintSystemMessage(os.Stderr, "Survey %s was left partially created.", id)
			}
			if cli.Interrupted(err) && ctx.Signal() != nil {
				cli.PrintSystemMessage(os.Stderr, "Interrupted by %v.", ctx.Signal())
				return nil
			}
			return err
		}

		fmt.Println(id)
		if !quiet {
			cli.PrintSystemMessage(os.Stderr, "Edit: %s", api.EditURL(id))
			cli.PrintSystemMessage(os.Stderr, "Preview: %s", api.PreviewURL(id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolP("quiet", "q", false, "Only print the survey ID")
	uploadCmd.Flags().String("metrics-file", "", "Write request metrics to this file (Prometheus text format)")
}
