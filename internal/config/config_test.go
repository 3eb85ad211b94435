package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	viper.Reset() // viper是全局状态，避免测试间互相污染
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: debug
jwt:
  secret: short
  expire_hours: 24
assistant:
  service_url: http://rag.internal:8000
  api_token: sekrit
  timeout: 15
  enable_logging: false
  max_question_length: 300
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "http://rag.internal:8000", cfg.Assistant.ServiceURL)
	assert.Equal(t, "sekrit", cfg.Assistant.APIToken)
	assert.Equal(t, 15, cfg.Assistant.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Assistant.RequestTimeout())
	assert.False(t, cfg.Assistant.EnableLogging)
	assert.Equal(t, 300, cfg.Assistant.MaxQuestionLength)
	assert.True(t, cfg.Assistant.Configured())
}

func TestLoadConfigAssistantDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: debug
assistant:
  service_url: http://localhost:8000
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Assistant.Timeout)
	assert.True(t, cfg.Assistant.EnableLogging)
	assert.Equal(t, 500, cfg.Assistant.MaxQuestionLength)
	// 缺少api_token时组件不可用
	assert.False(t, cfg.Assistant.Configured())
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}
