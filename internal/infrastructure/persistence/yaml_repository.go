package persistence

import (
	"bytes"
	"context"
	"time"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/domain/errors"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// specDocument는 선언적 YAML 스펙 파일의 최상위 구조입니다
type specDocument struct {
	Interfaces []entities.SpecParams `yaml:"interfaces"`
}

// YAMLSpecRepository는 호스트 로컬 YAML 파일 기반의 SpecRepository 구현체입니다.
// 컨트롤 플레인 DB가 없는 호스트에서 사용하며, 매 폴링마다 파일을 다시 읽습니다.
type YAMLSpecRepository struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	specFile   string
}

// NewYAMLSpecRepository는 새로운 YAMLSpecRepository를 생성합니다
func NewYAMLSpecRepository(fs interfaces.FileSystem, specFile string, logger *logrus.Logger) interfaces.SpecRepository {
	return &YAMLSpecRepository{
		fileSystem: fs,
		logger:     logger,
		specFile:   specFile,
	}
}

// GetNodeSpecs는 스펙 파일에 선언된 모든 인터페이스 스펙을 반환합니다.
// 파일은 호스트 전용이므로 nodeName으로 필터링하지 않습니다.
func (r *YAMLSpecRepository) GetNodeSpecs(ctx context.Context, nodeName string) ([]entities.SpecParams, error) {
	start := time.Now()

	content, err := r.fileSystem.ReadFile(r.specFile)
	if err != nil {
		return nil, errors.NewSystemError("스펙 파일 읽기 실패", err)
	}

	var doc specDocument
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.NewSystemError("스펙 파일 파싱 실패", err)
	}

	metrics.RecordSpecQuery("yaml", time.Since(start).Seconds())

	r.logger.WithFields(logrus.Fields{
		"spec_file":  r.specFile,
		"interfaces": len(doc.Interfaces),
	}).Debug("스펙 파일 로드 완료")

	return doc.Interfaces, nil
}

// UpdateSyncStatus는 YAML 백엔드에서는 지원하지 않으므로 아무 동작 없이 성공합니다
func (r *YAMLSpecRepository) UpdateSyncStatus(ctx context.Context, interfaceName string, status entities.SyncStatus) error {
	return nil
}
