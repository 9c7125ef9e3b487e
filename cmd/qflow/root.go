package main

import (
	"fmt"
	"os"

	"github.com/aretw0/qflow/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qflow",
	Short: "qflow builds Qualtrics surveys from definition files",
	Long: `qflow compiles YAML or JSON survey definitions (blocks, questions and a
flow tree of groups, randomizers and end-of-survey elements) and uploads them
through the Qualtrics survey-definitions API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("token", "", "API token (default $"+cli.EnvToken+")")
	rootCmd.PersistentFlags().String("data-center", "", "Data center ID, e.g. ca1 (default $"+cli.EnvDataCenter+")")
	rootCmd.PersistentFlags().String("base-url", "", "Site root overriding the data center (default $"+cli.EnvBaseURL+")")
}

// configFromFlags reads the connection flags, falling back to the environment.
func configFromFlags(cmd *cobra.Command) cli.Config {
	debug, _ := cmd.Flags().GetBool("debug")
	token, _ := cmd.Flags().GetString("token")
	dataCenter, _ := cmd.Flags().GetString("data-center")
	baseURL, _ := cmd.Flags().GetString("base-url")
	return cli.Config{
		Token:      token,
		DataCenter: dataCenter,
		BaseURL:    baseURL,
		Debug:      debug,
	}.WithEnv(os.Getenv)
}
