package main

import (
	"os"

	"github.com/aretw0/crema/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <source> <translated>",
	Short: "Audit a translated profile against its source",
	Long: `Matches every Gaggimate phase back to its Meticulous stage and checks the
controlled value and duration within tolerance, the phase roles and their order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		verbose, _ := cmd.Flags().GetBool("verbose")
		return cli.RunValidate(app, cli.ValidateOptions{
			Source:     args[0],
			Translated: args[1],
			Verbose:    verbose,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("verbose", "v", false, "List every compared value")
}
