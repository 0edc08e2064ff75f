package batch_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/internal/batch"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	good, err := os.ReadFile("../../testdata/classic.json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_classic.json"), good, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_broken.json"), []byte(`{"name":`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_classic.json"), good, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0644))
	return dir
}

func TestRun_IsolatesFailures(t *testing.T) {
	in := setupInput(t)
	out := filepath.Join(t.TempDir(), "out")

	var seen atomic.Int32
	p := batch.New(crema.New(), file.New(out),
		batch.WithWorkers(2),
		batch.WithProgress(func(batch.Outcome) { seen.Add(1) }),
	)

	report, err := p.Run(context.Background(), in, "", domain.ModeSmart)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 3)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, out, report.OutputDir)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, int32(3), seen.Load())

	// Input order is preserved.
	assert.Equal(t, filepath.Join(in, "a_classic.json"), report.Outcomes[0].File)
	assert.Equal(t, filepath.Join(in, "b_broken.json"), report.Outcomes[1].File)
	assert.Equal(t, filepath.Join(in, "c_classic.json"), report.Outcomes[2].File)

	assert.ErrorIs(t, report.Outcomes[1].Err, domain.ErrInputShape)
	assert.Empty(t, report.Outcomes[1].Output)

	raw, err := os.ReadFile(filepath.Join(out, "a_classic.json"))
	require.NoError(t, err)
	var doc domain.TargetProfile
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Classic Italian", doc.Label)
	assert.NotEmpty(t, report.Outcomes[0].Warnings)

	assert.NoFileExists(t, filepath.Join(out, "b_broken.json"))
}

func TestRun_NoProfiles(t *testing.T) {
	p := batch.New(crema.New(), file.New(t.TempDir()))
	_, err := p.Run(context.Background(), t.TempDir(), "", domain.ModeSmart)
	assert.ErrorIs(t, err, file.ErrNoProfiles)
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string, time.Duration) (ports.UnlockFunc, error) {
	return nil, ports.ErrLocked
}

func TestRun_Locked(t *testing.T) {
	p := batch.New(crema.New(), file.New(t.TempDir()), batch.WithLocker(busyLocker{}))
	_, err := p.Run(context.Background(), setupInput(t), "", domain.ModeSmart)
	assert.ErrorIs(t, err, ports.ErrLocked)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := batch.New(crema.New(), file.New(t.TempDir()), batch.WithLocker(noopLocker{}))
	report, err := p.Run(ctx, setupInput(t), "", domain.ModeSmart)
	require.NoError(t, err)
	for _, o := range report.Outcomes {
		assert.True(t, errors.Is(o.Err, context.Canceled), o.File)
	}
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, string, time.Duration) (ports.UnlockFunc, error) {
	return func(context.Context) error { return nil }, nil
}
