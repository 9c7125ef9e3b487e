package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/qflow/internal/cli"
	"github.com/aretw0/qflow/internal/presentation/progress"
	"github.com/aretw0/qflow/pkg/recipes"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <survey name>",
	Short: "Delete every survey with the given name",
	Long: `Deletes all surveys whose name matches exactly, together with their
responses. Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromFlags(cmd)
		yes, _ := cmd.Flags().GetBool("yes")
		printDefs, _ := cmd.Flags().GetBool("print")
		saveDir, _ := cmd.Flags().GetString("save-dir")
		logger := cli.NewLogger(cfg.Debug)

		api, err := cli.NewClient(cfg, logger, nil)
		if err != nil {
			return err
		}
		if !yes && !cli.IsInteractive(os.Stdin) {
			return errors.New("refusing to delete without --yes on non-interactive input")
		}

		name := args[0]
		opts := recipes.DeleteOptions{
			SaveDir:  saveDir,
			Progress: progress.New(os.Stderr),
			Confirm: func(n int) bool {
				if yes {
					return true
				}
				return cli.Confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete %d survey(s) named %q and their responses?", n, name))
			},
		}
		if printDefs {
			opts.Print = os.Stdout
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		deleted, err := recipes.DeleteSurveysByName(ctx, api, name, opts)
		if errors.Is(err, recipes.ErrAborted) {
			cli.PrintSystemMessage(os.Stderr, "Nothing deleted.")
			return nil
		}
		for _, id := range deleted {
			logger.Info("survey deleted", "survey_id", id)
		}
		if err != nil {
			return err
		}
		cli.PrintSystemMessage(os.Stderr, "Deleted %d survey(s) named %q.", len(deleted), name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	deleteCmd.Flags().Bool("print", false, "Print each survey definition before deleting it")
	deleteCmd.Flags().String("save-dir", "", "Save each survey definition to <dir>/<id>.json before deleting it")
}
