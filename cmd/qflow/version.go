package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/qflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of qflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qflow version %s\n", strings.TrimSpace(qflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
