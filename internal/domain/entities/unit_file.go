package entities

import "path/filepath"

// UnitClass는 systemd-networkd 유닛 파일의 종류이자 파일 확장자입니다
type UnitClass string

const (
	ClassLink    UnitClass = "link"
	ClassNetDev  UnitClass = "netdev"
	ClassNetwork UnitClass = "network"
)

// UnitClasses는 이 에이전트가 관리하는 모든 유닛 파일 종류입니다.
// 파괴적 초기화와 인터페이스별 삭제는 이 목록만을 대상으로 합니다.
var UnitClasses = []UnitClass{ClassLink, ClassNetDev, ClassNetwork}

// UnitFile은 하나의 유닛 파일에 대해 계산된 경로와 내용입니다.
// 매 동기화마다 새로 만들어지는 일시적 값으로, 디스크 비교 후 버려집니다.
type UnitFile struct {
	Path    string
	Content string
	Class   UnitClass
}

// UnitPath는 인터페이스의 정식 유닛 파일 경로를 반환합니다
// (<unitDir>/<name>.<class>)
func UnitPath(unitDir, name string, class UnitClass) string {
	return filepath.Join(unitDir, name+"."+string(class))
}

// IsManagedUnitFile은 파일 이름이 관리 대상 확장자(link/netdev/network)를
// 가지는지 확인합니다
func IsManagedUnitFile(fileName string) bool {
	ext := filepath.Ext(fileName)
	if ext == "" {
		return false
	}
	for _, class := range UnitClasses {
		if ext == "."+string(class) {
			return true
		}
	}
	return false
}
