package main

import (
	"os"

	"github.com/aretw0/qflow/internal/cli"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <definition>",
	Short: "Print the compiled flow document",
	Long: `Compiles the flow of a definition offline and prints the JSON document the
upload would send. Blocks get placeholder IDs (BL_1, BL_2, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Compile(os.Stdout, args[0])
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the flow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the survey flow.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(os.Stdout, args[0])
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <definition>",
	Short: "Show an outline of a survey definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if !raw && !cli.IsInteractive(os.Stdout) {
			raw = true
		}
		return cli.Inspect(os.Stdout, args[0], raw)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <definition>",
	Short: "Check a survey definition for consistency",
	Long:  `Loads and compiles a definition, reporting unknown fields, unknown blocks and invalid questions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(compileCmd, graphCmd, inspectCmd, validateCmd)
	inspectCmd.Flags().Bool("raw", false, "Print Markdown without terminal rendering")
}
