package interfaces

import (
	"context"

	"networkd-agent/internal/domain/entities"
)

// UnitSynchronizer는 검증된 스펙을 유닛 파일로 동기화하는 인터페이스입니다
type UnitSynchronizer interface {
	// Synchronize는 스펙의 목표 상태를 디스크에 반영하고
	// 실제 변경이 있었는지를 반환합니다
	Synchronize(ctx context.Context, spec *entities.InterfaceSpec) (bool, error)
}
