package main

import (
	"os"

	"github.com/aretw0/crema/internal/cli"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <file>",
	Short: "Translate one Meticulous profile",
	Long: `Translates a Meticulous profile and writes the Gaggimate profile to
TranslatedToGaggimate/<file> (or the configured output directory).
Use -o - to print the JSON to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		output, _ := cmd.Flags().GetString("output")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunTranslate(ctx, app, cli.TranslateOptions{
			Input:  args[0],
			Output: output,
			Mode:   app.Translator.Mode(),
			Quiet:  quiet,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().StringP("output", "o", "", "Output file or directory ('-' for stdout)")
	translateCmd.Flags().BoolP("quiet", "q", false, "Do not print the translation report")
	addModeFlag(translateCmd)
}
