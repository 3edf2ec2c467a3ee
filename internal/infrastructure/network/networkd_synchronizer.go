package network

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/domain/errors"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/domain/services"
	"networkd-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// NetworkdSynchronizer는 검증된 스펙을 systemd-networkd 유닛 파일로 동기화하는
// UnitSynchronizer 구현체입니다. 파일별로 임시 파일 쓰기 + 내용 비교 + 원자적
// 교체 프로토콜을 적용하며, 내용이 같으면 디스크를 건드리지 않습니다.
type NetworkdSynchronizer struct {
	fileSystem    interfaces.FileSystem
	renderer      *services.UnitRenderer
	backupService interfaces.BackupService
	logger        *logrus.Logger
	unitDir       string
}

// NewNetworkdSynchronizer는 새로운 NetworkdSynchronizer를 생성합니다
func NewNetworkdSynchronizer(
	fs interfaces.FileSystem,
	renderer *services.UnitRenderer,
	backupService interfaces.BackupService,
	logger *logrus.Logger,
	unitDir string,
) *NetworkdSynchronizer {
	return &NetworkdSynchronizer{
		fileSystem:    fs,
		renderer:      renderer,
		backupService: backupService,
		logger:        logger,
		unitDir:       unitDir,
	}
}

// Synchronize는 스펙의 목표 상태를 디스크에 반영합니다.
// 반환되는 changed는 파일별 결과의 OR입니다.
func (s *NetworkdSynchronizer) Synchronize(ctx context.Context, spec *entities.InterfaceSpec) (bool, error) {
	changed := false

	// 파괴적 초기화는 상태와 무관하게 전체 관리 파일을 먼저 제거한다
	if spec.Destructive {
		wiped, err := s.wipeManagedFiles(ctx)
		if err != nil {
			return false, err
		}
		changed = changed || wiped
	}

	if spec.State == entities.StateAbsent {
		if !spec.Destructive {
			removed, err := s.removeInterfaceFiles(spec.Name)
			if err != nil {
				return false, err
			}
			changed = changed || removed
		}
		// absent는 재생성 없이 종료
		return changed, nil
	}

	for _, unit := range s.renderer.UnitFiles(spec, s.unitDir) {
		wrote, err := s.syncUnitFile(unit)
		if err != nil {
			return false, err
		}
		if wrote {
			s.logger.WithFields(logrus.Fields{
				"interface": spec.Name,
				"path":      unit.Path,
				"class":     unit.Class,
			}).Info("유닛 파일 갱신 완료")
			metrics.RecordUnitFileWrite(string(unit.Class))
		}
		changed = changed || wrote
	}

	return changed, nil
}

// syncUnitFile은 하나의 유닛 파일에 쓰기 프로토콜을 적용합니다.
// 임시 파일은 원자적 교체가 가능하도록 대상과 같은 디렉토리에 만든다.
func (s *NetworkdSynchronizer) syncUnitFile(unit entities.UnitFile) (bool, error) {
	tmpPath, err := s.fileSystem.TempFile(s.unitDir, fmt.Sprintf(".%s.*", filepath.Base(unit.Path)))
	if err != nil {
		return false, errors.NewWriteError(s.unitDir, unit.Path, err)
	}

	if err := s.fileSystem.WriteFile(tmpPath, []byte(unit.Content), 0644); err != nil {
		s.discardTemp(tmpPath)
		return false, errors.NewWriteError(tmpPath, unit.Path, err)
	}

	if !s.contentChanged(unit) {
		// 변경 없음: 임시 파일만 정리
		s.discardTemp(tmpPath)
		return false, nil
	}

	if err := s.fileSystem.Rename(tmpPath, unit.Path); err != nil {
		s.discardTemp(tmpPath)
		return false, errors.NewWriteError(tmpPath, unit.Path, err)
	}

	return true, nil
}

// contentChanged는 렌더링된 내용이 기존 파일과 바이트 단위로 다른지 확인합니다
func (s *NetworkdSynchronizer) contentChanged(unit entities.UnitFile) bool {
	if !s.fileSystem.Exists(unit.Path) {
		return true
	}

	existing, err := s.fileSystem.ReadFile(unit.Path)
	if err != nil {
		// 읽기 실패 시 변경으로 간주하여 재작성을 시도한다
		s.logger.WithError(err).WithField("path", unit.Path).Warn("기존 유닛 파일 읽기 실패, 변경으로 간주")
		return true
	}

	return !bytes.Equal(existing, []byte(unit.Content))
}

// discardTemp는 교체되지 않은 임시 파일을 정리합니다
func (s *NetworkdSynchronizer) discardTemp(tmpPath string) {
	if err := s.fileSystem.Remove(tmpPath); err != nil {
		s.logger.WithError(err).WithField("path", tmpPath).Warn("임시 파일 정리 실패")
	}
}

// removeInterfaceFiles는 인터페이스의 정식 유닛 파일 세 개를 삭제합니다
func (s *NetworkdSynchronizer) removeInterfaceFiles(name string) (bool, error) {
	removed := false

	for _, class := range entities.UnitClasses {
		path := entities.UnitPath(s.unitDir, name, class)
		if !s.fileSystem.Exists(path) {
			continue
		}
		if err := s.fileSystem.Remove(path); err != nil {
			return false, errors.NewRemovalError(path, err)
		}
		s.logger.WithFields(logrus.Fields{
			"interface": name,
			"path":      path,
		}).Info("유닛 파일 삭제 완료")
		metrics.RecordUnitFileRemoval(string(class))
		removed = true
	}

	return removed, nil
}

// wipeManagedFiles는 유닛 디렉토리의 모든 관리 대상 파일
// (link/netdev/network 확장자)을 백업 후 삭제합니다.
// 모든 인터페이스를 대상으로 하는 의도적인 전체 초기화다.
func (s *NetworkdSynchronizer) wipeManagedFiles(ctx context.Context) (bool, error) {
	files, err := s.fileSystem.ListFiles(s.unitDir)
	if err != nil {
		return false, errors.NewSystemError("유닛 디렉토리 조회 실패", err)
	}

	wiped := false
	for _, fileName := range files {
		if !entities.IsManagedUnitFile(fileName) {
			continue
		}

		path := filepath.Join(s.unitDir, fileName)
		interfaceName := strings.TrimSuffix(fileName, filepath.Ext(fileName))

		if s.backupService != nil {
			if err := s.backupService.CreateBackup(ctx, interfaceName, path); err != nil {
				return false, errors.NewSystemError("초기화 전 백업 실패", err)
			}
		}

		if err := s.fileSystem.Remove(path); err != nil {
			return false, errors.NewRemovalError(path, err)
		}
		wiped = true
	}

	if wiped {
		s.logger.WithField("unit_dir", s.unitDir).Info("관리 대상 유닛 파일 전체 초기화 완료")
		metrics.RecordDestructiveWipe()
	}

	return wiped, nil
}
