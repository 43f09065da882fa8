package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plankeep/plankeep/internal/server"
)

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plankeep version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plankeep v%s\n", server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
