package stage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirReusesSameDay(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	d1, err := Dir(base, "tx_rrc", now)
	require.NoError(t, err)
	d2, err := Dir(base, "tx_rrc", now.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.DirExists(t, d1)
}

func TestDirCreatesFreshDirOnNewDay(t *testing.T) {
	base := t.TempDir()
	day1 := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	d1, err := Dir(base, "tx_rrc", day1)
	require.NoError(t, err)
	d2, err := Dir(base, "tx_rrc", day2)
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestLatestPicksMostRecentDate(t *testing.T) {
	base := t.TempDir()
	for _, d := range []string{"2026-01-01", "2026-03-05", "2026-02-14"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, "tx_rrc", d), 0o755))
	}

	got, err := Latest(base, "tx_rrc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "tx_rrc", "2026-03-05"), got)
}

func TestLatestErrorsWhenNoneStaged(t *testing.T) {
	_, err := Latest(t.TempDir(), "tx_rrc")
	assert.Error(t, err)
}

func TestCheckIntegrityRejectsHTMLErrorPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.csv")
	require.NoError(t, os.WriteFile(path, []byte("<html><body>502 Bad Gateway</body></html>"), 0o644))

	ok, err := CheckIntegrity(path)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoFileExists(t, path)
}

func TestCheckIntegrityAcceptsLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.csv")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	ok, err := CheckIntegrity(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, path)
}
