package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentConfigLoader_Load(t *testing.T) {
	t.Run("기본값으로 로드", func(t *testing.T) {
		loader := NewEnvironmentConfigLoader()

		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, SourceYAML, cfg.Source.Backend)
		assert.Equal(t, "/etc/networkd-agent/interfaces.yaml", cfg.Source.SpecFile)
		assert.Equal(t, "/etc/systemd/network", cfg.Agent.UnitDirectory)
		assert.Equal(t, 30*time.Second, cfg.Agent.PollInterval)
		assert.True(t, cfg.Agent.Backoff.Enabled)
		assert.Equal(t, 5*time.Minute, cfg.Agent.Backoff.MaxInterval)
		assert.Equal(t, "8080", cfg.Health.Port)
	})

	t.Run("환경 변수로 재정의", func(t *testing.T) {
		t.Setenv("SPEC_SOURCE", "mysql")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("NETWORKD_UNIT_DIR", "/run/systemd/network")
		t.Setenv("POLL_INTERVAL", "10s")
		t.Setenv("BACKOFF_ENABLED", "false")
		t.Setenv("HEALTH_PORT", "9090")

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, SourceMySQL, cfg.Source.Backend)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "/run/systemd/network", cfg.Agent.UnitDirectory)
		assert.Equal(t, 10*time.Second, cfg.Agent.PollInterval)
		assert.False(t, cfg.Agent.Backoff.Enabled)
		assert.Equal(t, "9090", cfg.Health.Port)
	})

	t.Run("알 수 없는 스펙 소스는 실패", func(t *testing.T) {
		t.Setenv("SPEC_SOURCE", "etcd")

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unknown spec source backend")
	})

	t.Run("잘못된 POLL_INTERVAL 값은 기본값 사용", func(t *testing.T) {
		t.Setenv("POLL_INTERVAL", "not-a-duration")

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Agent.PollInterval)
	})
}
