package usecases

import (
	"context"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/domain/errors"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// ReconcileNetworkUseCase는 present 상태로 선언된 인터페이스들을
// 유닛 파일로 동기화하는 유스케이스입니다
type ReconcileNetworkUseCase struct {
	repository   interfaces.SpecRepository
	synchronizer interfaces.UnitSynchronizer
	logger       *logrus.Logger
}

// NewReconcileNetworkUseCase는 새로운 ReconcileNetworkUseCase를 생성합니다
func NewReconcileNetworkUseCase(
	repo interfaces.SpecRepository,
	synchronizer interfaces.UnitSynchronizer,
	logger *logrus.Logger,
) *ReconcileNetworkUseCase {
	return &ReconcileNetworkUseCase{
		repository:   repo,
		synchronizer: synchronizer,
		logger:       logger,
	}
}

// ReconcileNetworkInput은 유스케이스의 입력 파라미터입니다
type ReconcileNetworkInput struct {
	NodeName string
}

// ReconcileNetworkOutput은 유스케이스의 출력 결과입니다
type ReconcileNetworkOutput struct {
	ChangedCount   int
	UnchangedCount int
	FailedCount    int
	TotalCount     int
}

// Execute는 네트워크 동기화 유스케이스를 실행합니다.
// 인터페이스 하나의 실패가 나머지 인터페이스 처리를 막지 않습니다.
func (uc *ReconcileNetworkUseCase) Execute(ctx context.Context, input ReconcileNetworkInput) (*ReconcileNetworkOutput, error) {
	// 1. 해당 노드에 선언된 모든 인터페이스 스펙 조회
	allSpecs, err := uc.repository.GetNodeSpecs(ctx, input.NodeName)
	if err != nil {
		return nil, err
	}

	output := &ReconcileNetworkOutput{}

	// 2. present 상태의 스펙만 처리 (absent는 RemoveNetworkUseCase 담당)
	for _, params := range allSpecs {
		if !isPresent(params) {
			continue
		}
		output.TotalCount++

		spec, err := entities.NewInterfaceSpec(params)
		if err != nil {
			uc.recordFailure(ctx, params.Name, err)
			output.FailedCount++
			continue
		}

		changed, err := uc.synchronizer.Synchronize(ctx, spec)
		if err != nil {
			uc.recordFailure(ctx, spec.Name, err)
			output.FailedCount++
			continue
		}

		if changed {
			uc.logger.WithFields(logrus.Fields{
				"interface": spec.Name,
				"kind":      spec.Kind,
			}).Info("인터페이스 동기화 완료 (변경 있음)")
			output.ChangedCount++
			metrics.RecordReconcile("changed")
		} else {
			uc.logger.WithField("interface", spec.Name).Debug("인터페이스 설정 최신 상태 유지")
			output.UnchangedCount++
			metrics.RecordReconcile("unchanged")
		}

		if err := uc.repository.UpdateSyncStatus(ctx, spec.Name, entities.SyncSucceeded); err != nil {
			uc.logger.WithError(err).WithField("interface", spec.Name).Error("동기화 상태 업데이트 실패")
		}
	}

	return output, nil
}

// recordFailure는 실패한 인터페이스의 로그, 메트릭, 상태 기록을 처리합니다
func (uc *ReconcileNetworkUseCase) recordFailure(ctx context.Context, name string, cause error) {
	uc.logger.WithFields(logrus.Fields{
		"interface": name,
		"error":     cause,
	}).Error("인터페이스 동기화 실패")

	metrics.RecordReconcile("failed")
	metrics.RecordError(errorLabel(cause))

	if err := uc.repository.UpdateSyncStatus(ctx, name, entities.SyncFailed); err != nil {
		uc.logger.WithError(err).WithField("interface", name).Error("동기화 상태 업데이트 실패")
	}
}

// isPresent는 원시 파라미터의 목표 상태가 present(기본값 포함)인지 확인합니다
func isPresent(params entities.SpecParams) bool {
	return params.State == "" || params.State == string(entities.StatePresent)
}

// errorLabel은 도메인 에러를 메트릭 레이블로 변환합니다
func errorLabel(err error) string {
	switch {
	case errors.IsValidationError(err):
		return "validation"
	case errors.IsWriteError(err):
		return "write"
	case errors.IsRemovalError(err):
		return "removal"
	case errors.IsNotFoundError(err):
		return "not_found"
	default:
		return "system"
	}
}
