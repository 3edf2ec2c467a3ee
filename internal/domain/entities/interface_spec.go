package entities

import (
	"fmt"
	"strings"

	"networkd-agent/internal/domain/errors"
)

// DesiredState는 인터페이스 설정 파일의 목표 상태입니다
type DesiredState string

const (
	StatePresent DesiredState = "present"
	StateAbsent  DesiredState = "absent"
)

// InterfaceKind는 생성할 인터페이스의 종류입니다
type InterfaceKind string

const (
	KindSimple  InterfaceKind = "simple"
	KindBridge  InterfaceKind = "bridge"
	KindVlan    InterfaceKind = "vlan"
	KindMacvlan InterfaceKind = "macvlan"
	KindBond    InterfaceKind = "bond"
)

// BridgeType은 브리지가 어떤 하위 인터페이스 위에 올라가는지를 나타냅니다
type BridgeType string

const (
	BridgeTypeSimple BridgeType = "simple"
	BridgeTypeVlan   BridgeType = "vlan"
	BridgeTypeBond   BridgeType = "bond"
	BridgeTypeNone   BridgeType = "none"
)

// VlanType은 VLAN을 생성하는 호스트 인터페이스인지, VLAN 인터페이스 자체인지를 나타냅니다
type VlanType string

const (
	VlanTypeInterface VlanType = "interface"
	VlanTypeHost      VlanType = "host"
)

// DHCPMode는 systemd-networkd의 DHCP= 값 그대로를 사용합니다.
// 빈 문자열은 DHCP 설정 없음(정적 주소)을 의미합니다.
type DHCPMode string

const (
	DHCPUnset DHCPMode = ""
	DHCPNone  DHCPMode = "no"
	DHCPIPv4  DHCPMode = "ipv4"
	DHCPIPv6  DHCPMode = "ipv6"
	DHCPBoth  DHCPMode = "yes"
)

// SpecParams는 외부(설정 파일, DB)에서 전달되는 원시 파라미터 집합입니다.
// NewInterfaceSpec에서 기본값 적용과 유효성 검증을 거쳐 InterfaceSpec이 됩니다.
type SpecParams struct {
	Name        string `yaml:"name"`
	State       string `yaml:"state"`
	Kind        string `yaml:"kind"`
	BridgeType  string `yaml:"bridge_type"`
	VlanType    string `yaml:"vlan_type"`
	MAC         string `yaml:"mac"`
	IP4         string `yaml:"ip4"`
	Gateway4    string `yaml:"gw4"`
	DNS4        string `yaml:"dns4"`
	NTP         string `yaml:"ntp"`
	Bridge      string `yaml:"bridge"`
	Vlan        string `yaml:"vlan"`
	Macvlan     string `yaml:"macvlan"`
	DHCP        string `yaml:"dhcp"`
	Destructive bool   `yaml:"destructive"`
}

// InterfaceSpec은 하나의 인터페이스에 대한 검증 완료된 목표 상태입니다.
// 생성 이후에는 불변이며, 하위 컴포넌트는 유효성을 다시 검사하지 않습니다.
type InterfaceSpec struct {
	Name        string
	State       DesiredState
	Kind        InterfaceKind
	BridgeType  BridgeType
	VlanType    VlanType
	MAC         string
	IP4         string
	Gateway4    string
	DNS4        string
	NTP         string
	Bridge      string
	Vlan        string
	Macvlan     string
	DHCP        DHCPMode
	Destructive bool
}

// NewInterfaceSpec은 원시 파라미터에 기본값을 적용하고 모든 불변 조건을 검증합니다.
// 검증 실패는 ValidationError로 반환되며 파일 I/O 이전에 보고됩니다.
func NewInterfaceSpec(params SpecParams) (*InterfaceSpec, error) {
	spec := &InterfaceSpec{
		Name:        params.Name,
		State:       DesiredState(defaultIfEmpty(params.State, string(StatePresent))),
		Kind:        InterfaceKind(defaultIfEmpty(params.Kind, string(KindSimple))),
		BridgeType:  BridgeType(defaultIfEmpty(params.BridgeType, string(BridgeTypeSimple))),
		VlanType:    VlanType(defaultIfEmpty(params.VlanType, string(VlanTypeInterface))),
		MAC:         params.MAC,
		IP4:         params.IP4,
		Gateway4:    params.Gateway4,
		DNS4:        params.DNS4,
		NTP:         params.NTP,
		Bridge:      params.Bridge,
		Vlan:        params.Vlan,
		Macvlan:     params.Macvlan,
		DHCP:        DHCPMode(params.DHCP),
		Destructive: params.Destructive,
	}

	if spec.Name == "" {
		return nil, errors.NewValidationError("interface name is required", nil)
	}
	if err := spec.validateChoices(); err != nil {
		return nil, err
	}

	// 원본 모듈과 동일한 순서의 치명적 전제 조건 검사
	if spec.DHCP != DHCPUnset && spec.IP4 != "" {
		return nil, errors.NewValidationError("cannot specify static address and DHCP at the same time", nil)
	}
	if spec.MAC == "" && spec.requiresMAC() {
		return nil, errors.NewValidationError("have to supply a MAC address to match to when type is macvlan, simple, bridge or bond", nil)
	}
	if spec.Vlan == "" && spec.Kind == KindVlan {
		return nil, errors.NewValidationError(`have to supply a vlan id, or list of vlan names in case of vlan_type="host", if type="vlan"`, nil)
	}
	if spec.Kind == KindBridge && spec.Bridge != "" {
		return nil, errors.NewValidationError(
			fmt.Sprintf("cannot specify a bridge to attach interface to when creating a bridge: (bridge: %s)", spec.Bridge), nil)
	}

	return spec, nil
}

// validateChoices는 열거형 필드가 허용된 값인지 확인합니다
func (s *InterfaceSpec) validateChoices() error {
	switch s.State {
	case StatePresent, StateAbsent:
	default:
		return errors.NewValidationError(fmt.Sprintf("invalid state: %s", s.State), nil)
	}
	switch s.Kind {
	case KindSimple, KindBridge, KindVlan, KindMacvlan, KindBond:
	default:
		return errors.NewValidationError(fmt.Sprintf("invalid interface type: %s", s.Kind), nil)
	}
	switch s.BridgeType {
	case BridgeTypeSimple, BridgeTypeVlan, BridgeTypeBond, BridgeTypeNone:
	default:
		return errors.NewValidationError(fmt.Sprintf("invalid bridge_type: %s", s.BridgeType), nil)
	}
	switch s.VlanType {
	case VlanTypeInterface, VlanTypeHost:
	default:
		return errors.NewValidationError(fmt.Sprintf("invalid vlan_type: %s", s.VlanType), nil)
	}
	switch s.DHCP {
	case DHCPUnset, DHCPNone, DHCPIPv4, DHCPIPv6, DHCPBoth:
	default:
		return errors.NewValidationError(fmt.Sprintf("invalid dhcp mode: %s", s.DHCP), nil)
	}
	return nil
}

// requiresMAC는 MAC 기반 매칭이 필수인 조합인지 확인합니다
func (s *InterfaceSpec) requiresMAC() bool {
	switch s.Kind {
	case KindSimple, KindMacvlan, KindBond:
		return true
	case KindBridge:
		return s.BridgeType != BridgeTypeVlan
	}
	return false
}

// NeedsLinkFile은 .link 파일이 필요한지 확인합니다
func (s *InterfaceSpec) NeedsLinkFile() bool {
	return s.Kind == KindSimple
}

// NeedsNetDevFile은 .netdev 파일이 필요한지 확인합니다
func (s *InterfaceSpec) NeedsNetDevFile() bool {
	switch s.Kind {
	case KindBridge, KindVlan, KindMacvlan:
		return true
	}
	return false
}

// MatchesByName은 .network 파일의 [Match] 구간이 MAC 대신 이름으로 매칭하는지 확인합니다
func (s *InterfaceSpec) MatchesByName() bool {
	return s.Kind == KindVlan || s.BridgeType == BridgeTypeVlan
}

// VlanNames는 vlan_type=host일 때 생성할 VLAN 인터페이스 이름 목록을
// 입력 순서 그대로 반환합니다
func (s *InterfaceSpec) VlanNames() []string {
	return strings.Fields(s.Vlan)
}

// MacvlanNames는 vlan_type=host일 때 생성할 MACVLAN 인터페이스 이름 목록을
// 입력 순서 그대로 반환합니다
func (s *InterfaceSpec) MacvlanNames() []string {
	return strings.Fields(s.Macvlan)
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
