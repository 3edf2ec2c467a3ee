package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 인터페이스 동기화 관련 메트릭
	InterfacesReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "networkd_agent_interfaces_reconciled_total",
			Help: "Total number of interface specs reconciled",
		},
		[]string{"status"}, // changed, unchanged, failed
	)

	UnitFilesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "networkd_agent_unit_files_written_total",
			Help: "Total number of unit files written to disk",
		},
		[]string{"class"}, // link, netdev, network
	)

	UnitFilesRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "networkd_agent_unit_files_removed_total",
			Help: "Total number of unit files removed from disk",
		},
		[]string{"class"},
	)

	DestructiveWipes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "networkd_agent_destructive_wipes_total",
			Help: "Total number of destructive unit directory wipes",
		},
	)

	// 폴링 관련 메트릭
	PollingCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "networkd_agent_polling_cycles_total",
			Help: "Total number of polling cycles executed",
		},
	)

	PollingCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "networkd_agent_polling_cycle_duration_seconds",
			Help:    "Time spent in each polling cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	PollingBackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "networkd_agent_polling_backoff_level",
			Help: "Current backoff level (0 = no backoff)",
		},
	)

	// 목표 상태 소스 관련 메트릭
	SpecSourceStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "networkd_agent_spec_source_status",
			Help: "Spec source status (1 = reachable, 0 = unreachable)",
		},
	)

	SpecQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "networkd_agent_spec_query_duration_seconds",
			Help:    "Time spent loading desired interface specs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"}, // mysql, yaml
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "networkd_agent_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, write, removal, system, not_found
	)

	// 시스템 정보
	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "networkd_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "spec_source", "node_name"},
	)
)

// RecordReconcile은 인터페이스 동기화 결과를 기록합니다
func RecordReconcile(status string) {
	InterfacesReconciled.WithLabelValues(status).Inc()
}

// RecordUnitFileWrite는 유닛 파일 쓰기를 기록합니다
func RecordUnitFileWrite(class string) {
	UnitFilesWritten.WithLabelValues(class).Inc()
}

// RecordUnitFileRemoval은 유닛 파일 삭제를 기록합니다
func RecordUnitFileRemoval(class string) {
	UnitFilesRemoved.WithLabelValues(class).Inc()
}

// RecordDestructiveWipe는 전체 초기화 실행을 기록합니다
func RecordDestructiveWipe() {
	DestructiveWipes.Inc()
}

// RecordPollingCycle은 폴링 사이클 메트릭을 기록합니다
func RecordPollingCycle(duration float64) {
	PollingCycleCount.Inc()
	PollingCycleDuration.Observe(duration)
}

// RecordSpecQuery는 스펙 조회 시간을 기록합니다
func RecordSpecQuery(backend string, duration float64) {
	SpecQueryDuration.WithLabelValues(backend).Observe(duration)
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetBackoffLevel은 현재 백오프 레벨을 설정합니다
func SetBackoffLevel(level float64) {
	PollingBackoffLevel.Set(level)
}

// SetSpecSourceStatus는 목표 상태 소스의 연결 상태를 설정합니다
func SetSpecSourceStatus(reachable bool) {
	if reachable {
		SpecSourceStatus.Set(1)
	} else {
		SpecSourceStatus.Set(0)
	}
}

// SetAgentInfo는 에이전트 정보를 설정합니다
func SetAgentInfo(version, specSource, nodeName string) {
	AgentInfo.WithLabelValues(version, specSource, nodeName).Set(1)
}
