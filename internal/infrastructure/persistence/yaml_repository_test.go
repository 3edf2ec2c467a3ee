package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/infrastructure/adapters"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interfaces.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newYAMLTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func TestYAMLSpecRepository_GetNodeSpecs(t *testing.T) {
	t.Run("정상적인 스펙 파일 로드", func(t *testing.T) {
		path := writeSpecFile(t, `
interfaces:
  - name: eth0
    mac: "00:11:22:33:44:55"
    ip4: 192.168.1.10/24
    gw4: 192.168.1.1
  - name: internet
    kind: vlan
    vlan: "10"
    state: absent
`)

		repo := NewYAMLSpecRepository(adapters.NewRealFileSystem(), path, newYAMLTestLogger())
		specs, err := repo.GetNodeSpecs(context.Background(), "test-node")

		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "eth0", specs[0].Name)
		assert.Equal(t, "00:11:22:33:44:55", specs[0].MAC)
		assert.Equal(t, "192.168.1.10/24", specs[0].IP4)
		assert.Equal(t, "internet", specs[1].Name)
		assert.Equal(t, "vlan", specs[1].Kind)
		assert.Equal(t, "absent", specs[1].State)
	})

	t.Run("destructive 플래그 파싱", func(t *testing.T) {
		path := writeSpecFile(t, `
interfaces:
  - name: eth0
    mac: "00:11:22:33:44:55"
    destructive: true
`)

		repo := NewYAMLSpecRepository(adapters.NewRealFileSystem(), path, newYAMLTestLogger())
		specs, err := repo.GetNodeSpecs(context.Background(), "test-node")

		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.True(t, specs[0].Destructive)
	})

	t.Run("알 수 없는 필드는 파싱 에러", func(t *testing.T) {
		path := writeSpecFile(t, `
interfaces:
  - name: eth0
    mac: "00:11:22:33:44:55"
    unknown_field: oops
`)

		repo := NewYAMLSpecRepository(adapters.NewRealFileSystem(), path, newYAMLTestLogger())
		specs, err := repo.GetNodeSpecs(context.Background(), "test-node")

		require.Error(t, err)
		assert.Nil(t, specs)
	})

	t.Run("스펙 파일이 없으면 에러", func(t *testing.T) {
		repo := NewYAMLSpecRepository(adapters.NewRealFileSystem(), "/nonexistent/interfaces.yaml", newYAMLTestLogger())
		specs, err := repo.GetNodeSpecs(context.Background(), "test-node")

		require.Error(t, err)
		assert.Nil(t, specs)
	})
}

func TestYAMLSpecRepository_UpdateSyncStatus(t *testing.T) {
	// YAML 백엔드는 상태 기록을 지원하지 않으므로 항상 성공한다
	repo := NewYAMLSpecRepository(adapters.NewRealFileSystem(), "/nonexistent/interfaces.yaml", newYAMLTestLogger())
	err := repo.UpdateSyncStatus(context.Background(), "eth0", entities.SyncSucceeded)
	assert.NoError(t, err)
}
