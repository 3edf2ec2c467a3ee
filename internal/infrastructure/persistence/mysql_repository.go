package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"networkd-agent/internal/domain/entities"
	"networkd-agent/internal/domain/errors"
	"networkd-agent/internal/domain/interfaces"
	"networkd-agent/internal/infrastructure/metrics"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// MySQLSpecRepository는 MySQL 기반의 SpecRepository 구현체입니다.
// 컨트롤 플레인이 networkd_interface 테이블에 선언한 목표 상태를 조회합니다.
type MySQLSpecRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLSpecRepository는 새로운 MySQLSpecRepository를 생성합니다
func NewMySQLSpecRepository(db *sql.DB, logger *logrus.Logger) interfaces.SpecRepository {
	return &MySQLSpecRepository{
		db:     db,
		logger: logger,
	}
}

// GetNodeSpecs는 특정 노드에 선언된 모든 인터페이스 스펙을 조회합니다
func (r *MySQLSpecRepository) GetNodeSpecs(ctx context.Context, nodeName string) ([]entities.SpecParams, error) {
	query := `
		SELECT ni.interface_name, ni.state, ni.type, ni.bridge_type, ni.vlan_type,
		       ni.macaddress, ni.ip4, ni.gw4, ni.dns4, ni.ntp,
		       ni.bridge, ni.vlan, ni.macvlan, ni.dhcp, ni.destructive
		FROM networkd_interface ni
		WHERE ni.attached_node_name = ?
		AND ni.deleted_at IS NULL
	`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, nodeName)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()
	metrics.RecordSpecQuery("mysql", time.Since(start).Seconds())

	var specs []entities.SpecParams

	for rows.Next() {
		var params entities.SpecParams
		var state, kind, bridgeType, vlanType sql.NullString
		var mac, ip4, gw4, dns4, ntp sql.NullString
		var bridge, vlan, macvlan, dhcp sql.NullString
		var destructive sql.NullBool

		err := rows.Scan(
			&params.Name,
			&state,
			&kind,
			&bridgeType,
			&vlanType,
			&mac,
			&ip4,
			&gw4,
			&dns4,
			&ntp,
			&bridge,
			&vlan,
			&macvlan,
			&dhcp,
			&destructive,
		)
		if err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		params.State = state.String
		params.Kind = kind.String
		params.BridgeType = bridgeType.String
		params.VlanType = vlanType.String
		params.MAC = mac.String
		params.IP4 = ip4.String
		params.Gateway4 = gw4.String
		params.DNS4 = dns4.String
		params.NTP = ntp.String
		params.Bridge = bridge.String
		params.Vlan = vlan.String
		params.Macvlan = macvlan.String
		params.DHCP = dhcp.String
		params.Destructive = destructive.Valid && destructive.Bool

		specs = append(specs, params)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return specs, nil
}

// UpdateSyncStatus는 인터페이스의 동기화 상태를 업데이트합니다
func (r *MySQLSpecRepository) UpdateSyncStatus(ctx context.Context, interfaceName string, status entities.SyncStatus) error {
	var syncSuccess int
	switch status {
	case entities.SyncSucceeded:
		syncSuccess = 1
	default:
		syncSuccess = 0
	}

	query := `
		UPDATE networkd_interface
		SET sync_success = ?, modified_at = NOW()
		WHERE interface_name = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, syncSuccess, interfaceName)
	if err != nil {
		return errors.NewSystemError("상태 업데이트 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("인터페이스를 찾을 수 없음: %s", interfaceName))
	}

	r.logger.WithFields(logrus.Fields{
		"interface": interfaceName,
		"status":    status,
	}).Debug("인터페이스 동기화 상태 업데이트 완료")

	return nil
}
