package container

import (
	"database/sql"

	"networkd-agent/internal/application/usecases"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/domain/services"
	"networkd-agent/internal/infrastructure/adapters"
	"networkd-agent/internal/infrastructure/config"
	"networkd-agent/internal/infrastructure/health"
	"networkd-agent/internal/infrastructure/network"
	"networkd-agent/internal/infrastructure/persistence"
	infraservices "networkd-agent/internal/infrastructure/services"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// 인프라스트럭처 어댑터들
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock

	// 서비스들
	healthService *health.HealthService
	renderer      *services.UnitRenderer
	backupService interfaces.BackupService
	synchronizer  interfaces.UnitSynchronizer

	// 레포지토리
	repository interfaces.SpecRepository

	// 유스케이스
	reconcileNetworkUseCase *usecases.ReconcileNetworkUseCase
	removeNetworkUseCase    *usecases.RemoveNetworkUseCase

	// 데이터베이스 (mysql 백엔드에서만 사용)
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(); err != nil {
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	if err := container.initializeUseCases(); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.clock = adapters.NewRealClock()

	// 유닛 디렉토리 보장
	if err := c.fileSystem.MkdirAll(c.config.Agent.UnitDirectory, 0755); err != nil {
		return err
	}

	// 데이터베이스 연결은 mysql 백엔드가 선택됐을 때만 연다
	if c.config.Source.Backend == config.SourceMySQL {
		dsn := c.buildDSN()
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return err
		}

		// 연결 풀 설정
		db.SetMaxOpenConns(c.config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.config.Database.MaxLifetime)

		// 연결 테스트
		if err := db.Ping(); err != nil {
			return err
		}

		c.db = db
	}

	// 레포지토리 초기화
	factory := persistence.NewSpecRepositoryFactory(c.config, c.db, c.fileSystem, c.logger)
	repository, err := factory.CreateSpecRepository()
	if err != nil {
		return err
	}
	c.repository = repository

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	// 헬스 서비스
	c.healthService = health.NewHealthService(c.clock, c.logger)
	c.healthService.SetSpecSource(c.config.Source.Backend)
	c.healthService.SetUnitDirectory(c.config.Agent.UnitDirectory)

	// 유닛 파일 렌더러
	c.renderer = services.NewUnitRenderer()

	// 백업 서비스
	c.backupService = infraservices.NewBackupService(
		c.fileSystem,
		c.clock,
		c.logger,
		c.config.Agent.BackupDirectory,
	)

	// 유닛 파일 동기화기
	c.synchronizer = network.NewNetworkdSynchronizer(
		c.fileSystem,
		c.renderer,
		c.backupService,
		c.logger,
		c.config.Agent.UnitDirectory,
	)

	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases() error {
	// 네트워크 동기화 유스케이스
	c.reconcileNetworkUseCase = usecases.NewReconcileNetworkUseCase(
		c.repository,
		c.synchronizer,
		c.logger,
	)

	// 네트워크 제거 유스케이스
	c.removeNetworkUseCase = usecases.NewRemoveNetworkUseCase(
		c.repository,
		c.synchronizer,
		c.logger,
	)

	return nil
}

// buildDSN은 데이터베이스 연결 문자열을 생성합니다
func (c *Container) buildDSN() string {
	cfg := c.config.Database
	return cfg.User + ":" + cfg.Password + "@tcp(" + cfg.Host + ":" + cfg.Port + ")/" + cfg.Database + "?parseTime=true"
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetReconcileNetworkUseCase는 네트워크 동기화 유스케이스를 반환합니다
func (c *Container) GetReconcileNetworkUseCase() *usecases.ReconcileNetworkUseCase {
	return c.reconcileNetworkUseCase
}

// GetRemoveNetworkUseCase는 네트워크 제거 유스케이스를 반환합니다
func (c *Container) GetRemoveNetworkUseCase() *usecases.RemoveNetworkUseCase {
	return c.removeNetworkUseCase
}

// Close는 컨테이너를 정리합니다
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
