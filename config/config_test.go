package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RESTY_SHEETS_API_KEY", "k")
	t.Setenv("RESTY_SHEETS_SPREADSHEET_ID", "sheet-1")
	t.Setenv("RESTY_MODEL_PROVIDER", "anthropic")
	t.Setenv("RESTY_HTTP_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "Sheet1!A:Z", cfg.Sheets.Range)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_MissingSheetConfig(t *testing.T) {
	t.Setenv("RESTY_SHEETS_API_KEY", "")
	t.Setenv("RESTY_SHEETS_SPREADSHEET_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_BadProvider(t *testing.T) {
	cfg := Config{
		Model:  ModelConfig{Provider: "llama"},
		Sheets: SheetsConfig{APIKey: "k", SpreadsheetID: "s"},
	}
	assert.Error(t, cfg.Validate())
}

func TestRedisConfig_Enabled(t *testing.T) {
	assert.False(t, RedisConfig{}.Enabled())
	assert.True(t, RedisConfig{Address: "localhost:6379"}.Enabled())
}
