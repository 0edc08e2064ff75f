package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of crema",
	Run: func(cmd *cobra.Command, args []string) {
		banner, _ := cmd.Flags().GetBool("banner")
		if banner {
			tui.PrintBanner(os.Stdout, crema.Version)
			return
		}
		fmt.Printf("crema version %s\n", strings.TrimSpace(crema.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the ASCII banner")
}
