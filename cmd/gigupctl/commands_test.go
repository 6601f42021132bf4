package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"gigup_backend/internal/config"
	"gigup_backend/internal/database"
	"gigup_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "gigup.db")
	cfg.FirstAdminEmail = "root@gigup.test"
	cfg.FirstAdminPassword = "root-password"
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(func() (*config.Config, error) { return cfg, nil }, database.Open)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func countAdmins(t *testing.T, cfg *config.Config) int64 {
	t.Helper()

	db, err := database.Open(cfg)
	require.NoError(t, err)
	defer database.Close(db)

	var n int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&n).Error)
	return n
}

func TestMigrateAndSeedAdmin(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")

	out, err = run(t, cfg, "seed-admin")
	require.NoError(t, err)
	assert.Contains(t, out, "root@gigup.test created")

	out, err = run(t, cfg, "seed-admin")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	assert.Equal(t, int64(1), countAdmins(t, cfg))
}

func TestResetRequiresConfirmation(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "migrate")
	require.NoError(t, err)

	_, err = run(t, cfg, "reset-db")
	assert.Error(t, err)

	out, err := run(t, cfg, "reset-db", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Database reset")
	assert.Equal(t, int64(1), countAdmins(t, cfg))
}

func TestPurgeCodes(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "migrate")
	require.NoError(t, err)

	out, err := run(t, cfg, "purge-codes", "--older-than", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "Purged 0 verification codes")
}
