package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eastus", cfg.Location)
	assert.Equal(t, "rg-apphost", cfg.ResourceGroup)
	assert.Equal(t, "manifest", cfg.Publisher)
	assert.Equal(t, "json", cfg.ManifestFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.MetricsDisabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "00000000-0000-0000-0000-000000000001")
	t.Setenv("APPHOST_RESOURCE_GROUP", "rg-Demo")
	t.Setenv("APPHOST_PUBLISHER", "diff")
	t.Setenv("APPHOST_METRICS_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "diff", cfg.Publisher)
	assert.True(t, cfg.MetricsDisabled)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001/rg-demo", cfg.Scope())
	assert.NoError(t, cfg.ValidateAzure())
}

func TestLoadError(t *testing.T) {
	t.Setenv("APPHOST_METRICS_DISABLED", "not-a-bool")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateAzure(t *testing.T) {
	err := Config{Location: "eastus"}.ValidateAzure()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_SUBSCRIPTION_ID")
	assert.Contains(t, err.Error(), "APPHOST_RESOURCE_GROUP")
}

func TestLoadSQLAdmin(t *testing.T) {
	t.Setenv("APPHOST_SQL_ADMIN_LOGIN", "sql-admins")
	t.Setenv("APPHOST_SQL_ADMIN_OBJECT_ID", "00000000-0000-0000-0000-0000000000aa")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sql-admins", cfg.SQLAdminLogin)
	assert.Equal(t, "00000000-0000-0000-0000-0000000000aa", cfg.SQLAdminObjectID)
	assert.Empty(t, cfg.TenantID)
}
