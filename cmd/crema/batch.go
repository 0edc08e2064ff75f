package main

import (
	"os"

	"github.com/aretw0/crema/internal/cli"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "translate-batch <dir>",
	Short: "Translate every profile in a directory",
	Long: `Translates every *.json file in a directory with bounded parallelism.
A failing file never stops the others; the command exits 1 if any file failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd, false)
		if err != nil {
			return err
		}
		defer app.Close()

		output, _ := cmd.Flags().GetString("output")
		workers, _ := cmd.Flags().GetInt("workers")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunBatch(ctx, app, cli.BatchOptions{
			InputDir:  args[0],
			OutputDir: output,
			Mode:      app.Translator.Mode(),
			Workers:   workers,
			Quiet:     quiet,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringP("output", "o", "", "Output directory")
	batchCmd.Flags().IntP("workers", "w", 0, "Files translated in parallel (default from config)")
	batchCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary table")
	addModeFlag(batchCmd)
}
