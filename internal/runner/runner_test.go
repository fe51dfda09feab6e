package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAVL writes a shell script that copies its stdin to stdin.txt and
// its first argument to args.txt, standing in for the AVL binary.
func fakeAVL(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake solver script requires a POSIX shell")
	}
	path := filepath.Join(dir, "avl")
	script := "#!/bin/sh\ncat > stdin.txt\necho \"$1\" > args.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestResolveExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := fakeAVL(t, dir)

	t.Run("explicit override", func(t *testing.T) {
		r := &Runner{Executable: exe}
		got, err := r.ResolveExecutable()
		require.NoError(t, err)
		assert.Equal(t, exe, got)
	})

	t.Run("missing override fails", func(t *testing.T) {
		r := &Runner{Executable: filepath.Join(dir, "nope")}
		_, err := r.ResolveExecutable()
		assert.Error(t, err)
	})

	t.Run("search path relative to workdir", func(t *testing.T) {
		r := &Runner{WorkDir: dir, SearchPaths: []string{"avl"}}
		got, err := r.ResolveExecutable()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "avl"), got)
	})
}

func TestRun_PipesCommandScript(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		Executable: fakeAVL(t, dir),
		WorkDir:    dir,
		Timeout:    10 * time.Second,
	}

	err := r.Run(context.Background(), "wing.avl", "OPER\nX\nQ\nQ\n")
	require.NoError(t, err)

	stdin, err := os.ReadFile(filepath.Join(dir, "stdin.txt"))
	require.NoError(t, err)
	assert.Equal(t, "OPER\nX\nQ\nQ\n", string(stdin))

	args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "wing.avl\n", string(args))
}

func TestRunDual(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		Executable: fakeAVL(t, dir),
		WorkDir:    dir,
		Timeout:    10 * time.Second,
	}

	err := r.RunDual(context.Background(), "wing.avl", "G\n", "T\n")
	require.NoError(t, err)
}

func TestExtractNeutralPoint(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{
			"standard listing",
			"  Clb Cnr / Clr Cnb  =   2.382823\n Neutral point  Xnp =   0.652360\n",
			0.652360, true,
		},
		{
			"normalized form",
			"Neutral point: x/c = -0.125",
			-0.125, true,
		},
		{"absent", "no stability data here", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractNeutralPoint(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCaptureNeutralPoint(t *testing.T) {
	dir := t.TempDir()
	stability := filepath.Join(dir, "stability.txt")
	summary := filepath.Join(dir, "np.txt")

	// Simulate AVL finishing its stability write shortly after launch.
	go func() {
		time.Sleep(300 * time.Millisecond)
		os.WriteFile(stability, []byte(" Neutral point  Xnp =   1.234567\n"), 0o644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := CaptureNeutralPoint(ctx, stability, summary, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.234567, v, 1e-9)

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	assert.Equal(t, "Xnp\n1.234567\n", string(data))
}

func TestCaptureNeutralPoint_Timeout(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := CaptureNeutralPoint(ctx, filepath.Join(dir, "never.txt"), filepath.Join(dir, "np.txt"), nil)
	assert.Error(t, err)
}
