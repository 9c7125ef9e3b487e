package main

import (
	"context"
	"os"

	"github.com/aretw0/qflow/internal/cli"
	"github.com/aretw0/qflow/pkg/recipes"
	"github.com/spf13/cobra"
)

var styleCmd = &cobra.Command{
	Use:   "style <survey id>",
	Short: "Update the header, footer, CSS or script of a survey",
	Long: `Patches the look of an existing survey. Each flag takes a file path; only
the given parts change. The script is appended to the footer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)
		logger := cli.NewLogger(cfg.Debug)

		var style recipes.Style
		for flag, dst := range map[string]**string{
			"header": &style.Header,
			"footer": &style.Footer,
			"css":    &style.CustomCSS,
			"script": &style.Script,
		} {
			path, _ := cmd.Flags().GetString(flag)
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			content := string(data)
			*dst = &content
		}

		api, err := cli.NewClient(cfg, logger, nil)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := recipes.StyleSurvey(ctx, api, args[0], style); err != nil {
			return err
		}
		cli.PrintSystemMessage(os.Stderr, "Survey %s updated.", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(styleCmd)
	styleCmd.Flags().String("header", "", "HTML file for the header")
	styleCmd.Flags().String("footer", "", "HTML file for the footer")
	styleCmd.Flags().String("css", "", "CSS file for custom styles")
	styleCmd.Flags().String("script", "", "JavaScript file appended to the footer")
}
