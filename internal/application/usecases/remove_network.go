package usecases

import (
	"context"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// RemoveNetworkUseCase는 absent 상태로 선언된 인터페이스들의
// 유닛 파일을 제거하는 유스케이스입니다
type RemoveNetworkUseCase struct {
	repository   interfaces.SpecRepository
	synchronizer interfaces.UnitSynchronizer
	logger       *logrus.Logger
}

// NewRemoveNetworkUseCase는 새로운 RemoveNetworkUseCase를 생성합니다
func NewRemoveNetworkUseCase(
	repo interfaces.SpecRepository,
	synchronizer interfaces.UnitSynchronizer,
	logger *logrus.Logger,
) *RemoveNetworkUseCase {
	return &RemoveNetworkUseCase{
		repository:   repo,
		synchronizer: synchronizer,
		logger:       logger,
	}
}

// RemoveNetworkInput은 유스케이스의 입력 파라미터입니다
type RemoveNetworkInput struct {
	NodeName string
}

// RemoveNetworkOutput은 유스케이스의 출력 결과입니다
type RemoveNetworkOutput struct {
	RemovedInterfaces []string
	TotalRemoved      int
	FailedCount       int
}

// Execute는 네트워크 제거 유스케이스를 실행합니다
func (uc *RemoveNetworkUseCase) Execute(ctx context.Context, input RemoveNetworkInput) (*RemoveNetworkOutput, error) {
	allSpecs, err := uc.repository.GetNodeSpecs(ctx, input.NodeName)
	if err != nil {
		return nil, err
	}

	output := &RemoveNetworkOutput{}

	for _, params := range allSpecs {
		if isPresent(params) {
			continue
		}

		spec, err := entities.NewInterfaceSpec(params)
		if err != nil {
			uc.logger.WithFields(logrus.Fields{
				"interface": params.Name,
				"error":     err,
			}).Error("인터페이스 제거 스펙 검증 실패")
			metrics.RecordError(errorLabel(err))
			output.FailedCount++
			continue
		}

		changed, err := uc.synchronizer.Synchronize(ctx, spec)
		if err != nil {
			uc.logger.WithFields(logrus.Fields{
				"interface": spec.Name,
				"error":     err,
			}).Error("인터페이스 유닛 파일 제거 실패")
			metrics.RecordError(errorLabel(err))
			output.FailedCount++
			continue
		}

		if changed {
			uc.logger.WithField("interface", spec.Name).Info("인터페이스 유닛 파일 제거 완료")
			output.RemovedInterfaces = append(output.RemovedInterfaces, spec.Name)
			output.TotalRemoved++
		}

		if err := uc.repository.UpdateSyncStatus(ctx, spec.Name, entities.SyncSucceeded); err != nil {
			uc.logger.WithError(err).WithField("interface", spec.Name).Error("동기화 상태 업데이트 실패")
		}
	}

	return output, nil
}
