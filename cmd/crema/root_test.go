package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/crema/internal/config"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModeCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().Bool("debug", false, "")
	addModeFlag(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadApp_ModePrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "crema.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mode: preserve\n"), 0644))

	app, err := loadApp(newModeCmd(t, "--config", cfgPath), false)
	require.NoError(t, err)
	assert.Equal(t, domain.ModePreserve, app.Translator.Mode())

	t.Setenv(config.EnvTransitionMode, "linear")
	app, err = loadApp(newModeCmd(t, "--config", cfgPath), false)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLinear, app.Translator.Mode())

	app, err = loadApp(newModeCmd(t, "--config", cfgPath, "--mode", "INSTANT"), false)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeInstant, app.Translator.Mode())

	_, err = loadApp(newModeCmd(t, "--mode", "wavy"), false)
	assert.ErrorContains(t, err, "invalid mode")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"translate", "translate-batch", "validate", "validate-batch", "report", "serve", "mcp", "version"} {
		assert.True(t, names[want], want)
	}
}
