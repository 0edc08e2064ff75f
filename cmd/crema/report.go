package main

import (
	"os"

	"github.com/aretw0/crema/internal/cli"
	"github.com/spf13/cobra"
)

var validateBatchCmd = &cobra.Command{
	Use:   "validate-batch <profiles_dir> <translated_dir>",
	Short: "Audit every translated profile in a directory",
	Long: `Pairs each *.json file in profiles_dir with the file of the same name in
translated_dir and audits every pair. Profiles without a translation are
skipped with a warning; the command exits 1 if any pair failed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		verbose, _ := cmd.Flags().GetBool("verbose")
		phases, _ := cmd.Flags().GetBool("verbose-phases")
		return cli.RunReport(app, cli.ReportOptions{
			SourceDir:     args[0],
			TranslatedDir: args[1],
			Format:        cli.FormatText,
			AllDetails:    verbose || phases,
			Verbose:       phases,
		}, os.Stdout)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <profiles_dir> <translated_dir>",
	Short: "Generate a validation report for a directory of translations",
	Long: `Audits every profile pair and prints pass/fail counts followed by the
details of each failure, as text or JSON. Exits 1 if any pair failed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		format, _ := cmd.Flags().GetString("format")
		summary, _ := cmd.Flags().GetBool("summary")
		return cli.RunReport(app, cli.ReportOptions{
			SourceDir:     args[0],
			TranslatedDir: args[1],
			Format:        format,
			SummaryOnly:   summary,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateBatchCmd)
	validateBatchCmd.Flags().BoolP("verbose", "v", false, "Show the audit of every profile, not only failures")
	validateBatchCmd.Flags().BoolP("verbose-phases", "V", false, "List every compared value per phase")

	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("format", "f", cli.FormatText, "Report format (text or json)")
	reportCmd.Flags().BoolP("summary", "s", false, "Show only the pass/fail summary")
}
