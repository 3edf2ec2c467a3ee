package interfaces

import (
	"context"

	"networkd-agent/internal/domain/entities"
)

// SpecRepository는 목표 상태(인터페이스 스펙)를 제공하는 저장소 인터페이스입니다
type SpecRepository interface {
	// GetNodeSpecs는 특정 노드에 선언된 모든 인터페이스 스펙을 조회합니다
	GetNodeSpecs(ctx context.Context, nodeName string) ([]entities.SpecParams, error)

	// UpdateSyncStatus는 인터페이스의 동기화 상태를 기록합니다.
	// 상태 기록을 지원하지 않는 백엔드는 아무 동작 없이 성공을 반환합니다.
	UpdateSyncStatus(ctx context.Context, interfaceName string, status entities.SyncStatus) error
}
