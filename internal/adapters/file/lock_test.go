package file_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ctx := context.Background()

	unlock, err := file.NewLocker().Lock(ctx, dir, 0)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, file.LockFileName))

	// flock locks are per file description, so a second handle conflicts.
	short, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = file.NewLocker().Lock(short, dir, 0)
	assert.ErrorIs(t, err, ports.ErrLocked)

	require.NoError(t, unlock(ctx))

	unlock, err = file.NewLocker().Lock(ctx, dir, 0)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}
