package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeResolvedAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("wallet-data")
	require.NoError(t, err)

	want, err := filepath.Abs(filepath.Join(tmp, "wallet-data"))
	require.NoError(t, err)
	realWant, _ := filepath.EvalSymlinks(filepath.Dir(want))
	realGot, _ := filepath.EvalSymlinks(filepath.Dir(got))
	require.Equal(t, realWant, realGot)
	require.Equal(t, "wallet-data", filepath.Base(got))

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_NestedAndIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestDataFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	got, err := DataFile(dir, "wallet.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "wallet.db"), got)

	_, err = os.Stat(dir)
	require.NoError(t, err)
}
