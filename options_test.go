package strcore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions([]byte("growth_factor: 1.5\nmin_capacity: 32\n"))
	require.NoError(t, err)
	require.Equal(t, 1.5, opts.GrowthFactor)
	require.Equal(t, 32, opts.MinCapacity)

	opts, err = ParseOptions([]byte("min_capacity: 0\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultOptions().GrowthFactor, opts.GrowthFactor)
	require.Equal(t, 0, opts.MinCapacity)

	_, err = ParseOptions([]byte("growth_factor: 0.5\n"))
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = ParseOptions([]byte("min_capacity: -1\n"))
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = ParseOptions([]byte("growth_factor: [1\n"))
	require.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("growth_factor: 3\n"), 0o600))
	opts, err := LoadOptions(path)
	require.NoError(t, err)
	require.Equal(t, 3.0, opts.GrowthFactor)
	require.Equal(t, 16, opts.MinCapacity)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewAllocatorFallsBack(t *testing.T) {
	a := NewAllocator(Options{GrowthFactor: 0, MinCapacity: -5})
	require.Equal(t, DefaultOptions().GrowthFactor, a.Opts.GrowthFactor)
	require.Equal(t, DefaultOptions().MinCapacity, a.Opts.MinCapacity)
	require.NotNil(t, a.log)

	a = NewAllocator(Options{GrowthFactor: 1, MinCapacity: 0})
	s := a.New("abc")
	require.Equal(t, 3, s.buf.Cap())
	require.True(t, a.New("").IsEmpty())
}
