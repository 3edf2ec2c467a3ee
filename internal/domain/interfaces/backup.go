package interfaces

import "context"

// BackupService는 유닛 파일 백업을 처리하는 인터페이스입니다
type BackupService interface {
	// CreateBackup은 설정 파일의 타임스탬프 백업을 생성합니다.
	// 원본 파일이 없으면 아무 동작 없이 성공합니다.
	CreateBackup(ctx context.Context, interfaceName string, configPath string) error
}
