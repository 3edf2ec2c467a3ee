package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"networkd-agent/internal/infrastructure/adapters"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupTestService(t *testing.T) (*BackupService, string) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	backupDir := filepath.Join(t.TempDir(), "backups")
	service := NewBackupService(adapters.NewRealFileSystem(), adapters.NewRealClock(), logger, backupDir).(*BackupService)
	return service, backupDir
}

func TestBackupService_CreateBackup(t *testing.T) {
	t.Run("유닛 파일 백업 생성", func(t *testing.T) {
		service, backupDir := newBackupTestService(t)

		unitPath := filepath.Join(t.TempDir(), "eth0.network")
		content := "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Network]\nDHCP=ipv4\n"
		require.NoError(t, os.WriteFile(unitPath, []byte(content), 0644))

		err := service.CreateBackup(context.Background(), "eth0", unitPath)
		require.NoError(t, err)

		entries, err := os.ReadDir(backupDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		// 백업 파일명은 인터페이스명_타임스탬프.확장자 형식
		name := entries[0].Name()
		assert.Regexp(t, `^eth0_\d{8}_\d{6}\.network$`, name)

		backed, err := os.ReadFile(filepath.Join(backupDir, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(backed))
	})

	t.Run("원본 파일이 없으면 백업 없이 성공", func(t *testing.T) {
		service, backupDir := newBackupTestService(t)

		err := service.CreateBackup(context.Background(), "eth0", "/nonexistent/eth0.network")
		require.NoError(t, err)

		assert.NoDirExists(t, filepath.Join(backupDir, "eth0"))
		entries, _ := os.ReadDir(backupDir)
		assert.Empty(t, entries)
	})
}

func TestBackupService_HasBackup(t *testing.T) {
	service, _ := newBackupTestService(t)
	ctx := context.Background()

	assert.False(t, service.HasBackup(ctx, "eth0"))

	unitPath := filepath.Join(t.TempDir(), "eth0.network")
	require.NoError(t, os.WriteFile(unitPath, []byte("content"), 0644))
	require.NoError(t, service.CreateBackup(ctx, "eth0", unitPath))

	assert.True(t, service.HasBackup(ctx, "eth0"))
	assert.False(t, service.HasBackup(ctx, "eth1"))
}
