package backup_test

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/newsroom/internal/backup"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/internal/testutil"
)

// seededFile creates a seeded SQLite database file and returns its path.
func seededFile(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "newsroom.db")

	s, err := store.Open(ctx, "sqlite", path)
	require.NoError(t, err)
	require.NoError(t, services.Migrate(ctx, s))
	testutil.Seed(t, s)
	require.NoError(t, s.Close())
	return path
}

func TestBackupRestore(t *testing.T) {
	ctx := context.Background()
	dbPath := seededFile(t)
	cfgPath := filepath.Join(filepath.Dir(dbPath), "newsroom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 9191\n"), 0o600))

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	m, err := backup.Backup(ctx, dbPath, cfgPath, archive)
	require.NoError(t, err)
	assert.Equal(t, "newsroom.db", m.Database)
	assert.Equal(t, "newsroom.yaml", m.Config)

	target := t.TempDir()
	restored, err := backup.Restore(ctx, archive, target, false)
	require.NoError(t, err)
	assert.Equal(t, m.Database, restored.Database)
	assert.Equal(t, m.Version, restored.Version)

	cfg, err := os.ReadFile(filepath.Join(target, "newsroom.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "9191")

	s, err := store.Open(ctx, "sqlite", filepath.Join(target, "newsroom.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n))
	assert.Equal(t, 13, n)
}

func TestBackup_MissingConfigSkipped(t *testing.T) {
	dbPath := seededFile(t)
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")

	m, err := backup.Backup(context.Background(), dbPath, filepath.Join(t.TempDir(), "absent.yaml"), archive)
	require.NoError(t, err)
	assert.Empty(t, m.Config)
}

func TestBackup_MissingDatabase(t *testing.T) {
	_, err := backup.Backup(context.Background(),
		filepath.Join(t.TempDir(), "nope.db"), "", filepath.Join(t.TempDir(), "out.tar.gz"))
	assert.Error(t, err)
}

func TestRestore_ExistingFiles(t *testing.T) {
	ctx := context.Background()
	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := backup.Backup(ctx, seededFile(t), "", archive)
	require.NoError(t, err)

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "newsroom.db"), []byte("stale"), 0o600))

	_, err = backup.Restore(ctx, archive, target, false)
	assert.ErrorIs(t, err, backup.ErrExists)

	_, err = backup.Restore(ctx, archive, target, true)
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(target, "newsroom.db"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(len("stale")))
}

func TestRestore_RejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	body := []byte("x")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "../escape.db", Mode: 0o644, Size: int64(len(body))}))
	_, err = tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	_, err = backup.Restore(context.Background(), archive, t.TempDir(), false)
	assert.ErrorContains(t, err, "escapes")
}

func TestRestore_NoManifest(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "empty.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	require.NoError(t, tar.NewWriter(gw).Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	_, err = backup.Restore(context.Background(), archive, t.TempDir(), false)
	assert.ErrorContains(t, err, "manifest")
}
