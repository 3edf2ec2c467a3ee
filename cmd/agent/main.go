package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"networkd-agent/internal/application/polling"
	"networkd-agent/internal/application/usecases"
	"networkd-agent/internal/infrastructure/config"
	"networkd-agent/internal/infrastructure/container"
	"networkd-agent/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const version = "0.2.0"

func main() {
	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// LOG_LEVEL 환경 변수 설정
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// 의존성 주입 컨테이너 생성
	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create dependency injection container")
	}
	defer func() {
		if err := appContainer.Close(); err != nil {
			logger.WithError(err).Error("Failed to cleanup container")
		}
	}()

	// 애플리케이션 시작
	app := NewApplication(appContainer, logger)
	if err := app.Run(); err != nil {
		logger.WithError(err).Fatal("Failed to run application")
	}
}

// Application은 메인 애플리케이션 구조체입니다
type Application struct {
	container        *container.Container
	logger           *logrus.Logger
	reconcileUseCase *usecases.ReconcileNetworkUseCase
	removeUseCase    *usecases.RemoveNetworkUseCase
	healthServer     *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container:        container,
		logger:           logger,
		reconcileUseCase: container.GetReconcileNetworkUseCase(),
		removeUseCase:    container.GetRemoveNetworkUseCase(),
	}
}

// Run은 애플리케이션을 실행합니다
func (a *Application) Run() error {
	cfg := a.container.GetConfig()

	// 에이전트 정보 메트릭 설정
	hostname, _ := os.Hostname()
	metrics.SetAgentInfo(version, cfg.Source.Backend, hostname)

	// 헬스체크 서버 시작
	if err := a.startHealthServer(cfg.Health.Port); err != nil {
		return err
	}

	// 컨텍스트 및 시그널 핸들링 설정
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 폴링 전략 설정
	var strategy polling.Strategy
	if cfg.Agent.Backoff.Enabled {
		strategy = polling.NewExponentialBackoffStrategy(
			cfg.Agent.PollInterval,
			cfg.Agent.Backoff.MaxInterval,
			cfg.Agent.Backoff.Multiplier,
			a.logger,
		)
		a.logger.WithFields(logrus.Fields{
			"base_interval": cfg.Agent.PollInterval,
			"max_interval":  cfg.Agent.Backoff.MaxInterval,
			"multiplier":    cfg.Agent.Backoff.Multiplier,
		}).Info("Exponential backoff polling enabled")
	} else {
		strategy = polling.NewFixedIntervalStrategy(cfg.Agent.PollInterval)
		a.logger.WithField("interval", cfg.Agent.PollInterval).Info("Fixed interval polling enabled")
	}

	// 폴링 컨트롤러 생성
	pollingController := polling.NewPollingController(strategy, a.logger)

	a.logger.WithFields(logrus.Fields{
		"spec_source": cfg.Source.Backend,
		"unit_dir":    cfg.Agent.UnitDirectory,
	}).Info("networkd agent started")

	// 시그널 처리를 위한 goroutine
	go func() {
		<-sigChan
		a.logger.Info("Received shutdown signal")
		cancel()
	}()

	// 폴링 시작
	return pollingController.Start(ctx, func(ctx context.Context) error {
		err := a.reconcileInterfaces(ctx)
		if err != nil {
			a.logger.WithError(err).Error("Failed to reconcile network interfaces")
			a.container.GetHealthService().UpdateSourceHealth(false, err)
			metrics.SetSpecSourceStatus(false)
			return err
		}
		a.container.GetHealthService().UpdateSourceHealth(true, nil)
		metrics.SetSpecSourceStatus(true)
		return nil
	})
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) error {
	healthService := a.container.GetHealthService()

	// HTTP 핸들러 설정
	mux := http.NewServeMux()
	mux.Handle("/", healthService)
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()

	return nil
}

// reconcileInterfaces는 한 번의 폴링 사이클을 처리합니다
func (a *Application) reconcileInterfaces(ctx context.Context) error {
	startTime := time.Now()

	// 호스트네임 가져오기
	hostname, err := os.Hostname()
	if err != nil {
		return err
	}

	// .novalocal 또는 다른 도메인 접미사 제거
	originalHostname := hostname
	if idx := strings.Index(hostname, "."); idx != -1 {
		hostname = hostname[:idx]
	}

	if originalHostname != hostname {
		a.logger.WithFields(logrus.Fields{
			"original_hostname": originalHostname,
			"cleaned_hostname":  hostname,
		}).Debug("Hostname domain suffix removed")
	}

	// 1. present 스펙 동기화 유스케이스 실행 (생성/수정)
	reconcileOutput, err := a.reconcileUseCase.Execute(ctx, usecases.ReconcileNetworkInput{
		NodeName: hostname,
	})
	if err != nil {
		return err
	}

	// 2. absent 스펙 제거 유스케이스 실행
	removeOutput, err := a.removeUseCase.Execute(ctx, usecases.RemoveNetworkInput{
		NodeName: hostname,
	})
	if err != nil {
		a.logger.WithError(err).Error("Failed to process interface removal")
		// 제거 실패는 치명적이지 않으므로 빈 결과로 초기화
		removeOutput = &usecases.RemoveNetworkOutput{}
	}

	// 헬스체크 통계 업데이트
	healthService := a.container.GetHealthService()
	for i := 0; i < reconcileOutput.ChangedCount+reconcileOutput.UnchangedCount; i++ {
		healthService.IncrementReconciledInterfaces()
	}
	for i := 0; i < reconcileOutput.FailedCount+removeOutput.FailedCount; i++ {
		healthService.IncrementFailedInterfaces()
	}

	// 실제 변경이 있을 때만 로그 출력
	if reconcileOutput.ChangedCount > 0 || reconcileOutput.FailedCount > 0 || removeOutput.TotalRemoved > 0 {
		a.logger.WithFields(logrus.Fields{
			"changed":        reconcileOutput.ChangedCount,
			"unchanged":      reconcileOutput.UnchangedCount,
			"failed":         reconcileOutput.FailedCount,
			"total":          reconcileOutput.TotalCount,
			"removed_total":  removeOutput.TotalRemoved,
			"removed_failed": removeOutput.FailedCount,
		}).Info("Network reconciliation completed")
	}

	// 폴링 사이클 메트릭 기록
	metrics.RecordPollingCycle(time.Since(startTime).Seconds())

	return nil
}
