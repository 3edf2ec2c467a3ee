package services

import (
	"fmt"
	"strings"

	"networkd-agent/internal/domain/entities"
)

// UnitRenderer는 검증된 스펙으로부터 유닛 파일 내용을 유도하는 도메인 서비스입니다.
// 순수 함수로만 구성되며, 같은 스펙은 항상 바이트 단위로 동일한 내용을 생성합니다.
type UnitRenderer struct{}

// NewUnitRenderer는 새로운 UnitRenderer를 생성합니다
func NewUnitRenderer() *UnitRenderer {
	return &UnitRenderer{}
}

// UnitFiles는 스펙에 적용되는 유닛 파일들을 고정된 순서(link, netdev, network)로
// 반환합니다. network 파일은 항상 포함됩니다.
func (r *UnitRenderer) UnitFiles(spec *entities.InterfaceSpec, unitDir string) []entities.UnitFile {
	var files []entities.UnitFile

	if spec.NeedsLinkFile() {
		files = append(files, entities.UnitFile{
			Path:    entities.UnitPath(unitDir, spec.Name, entities.ClassLink),
			Content: r.RenderLink(spec),
			Class:   entities.ClassLink,
		})
	}
	if spec.NeedsNetDevFile() {
		files = append(files, entities.UnitFile{
			Path:    entities.UnitPath(unitDir, spec.Name, entities.ClassNetDev),
			Content: r.RenderNetDev(spec),
			Class:   entities.ClassNetDev,
		})
	}
	files = append(files, entities.UnitFile{
		Path:    entities.UnitPath(unitDir, spec.Name, entities.ClassNetwork),
		Content: r.RenderNetwork(spec),
		Class:   entities.ClassNetwork,
	})

	return files
}

// RenderLink는 .link 파일 내용을 생성합니다 (simple 인터페이스 전용)
func (r *UnitRenderer) RenderLink(spec *entities.InterfaceSpec) string {
	b := newLineBuilder()
	b.addf("[Match]")
	b.addf("MACAddress=%s", spec.MAC)
	b.blank()
	b.addf("[Link]")
	b.addf("Name=%s", spec.Name)
	return b.build() + "\n"
}

// RenderNetDev는 .netdev 파일 내용을 생성합니다 (bridge/vlan/macvlan 전용)
func (r *UnitRenderer) RenderNetDev(spec *entities.InterfaceSpec) string {
	b := newLineBuilder()
	b.addf("[NetDev]")
	b.addf("Name=%s", spec.Name)
	b.addf("Kind=%s", spec.Kind)
	if spec.Kind == entities.KindBridge {
		// 원본 포맷 유지: bridge는 Kind= 뒤에 개행이 하나 더 붙는다
		b.blank()
	}
	if spec.MAC != "" {
		b.addf("MACAddress=%s", spec.MAC)
	}

	switch spec.Kind {
	case entities.KindVlan:
		b.blank()
		b.addf("[VLAN]")
		b.addf("Id=%s", spec.Vlan)
	case entities.KindMacvlan:
		b.blank()
		b.addf("[MACVLAN]")
		b.addf("Mode=bridge")
	}

	return b.build()
}

// RenderNetwork는 .network 파일 내용을 생성합니다.
// [Network] 항목의 순서는 고정이며 변경 감지의 기준이 됩니다.
func (r *UnitRenderer) RenderNetwork(spec *entities.InterfaceSpec) string {
	b := newLineBuilder()
	b.addf("[Match]")
	if spec.MatchesByName() {
		b.addf("Name=%s", spec.Name)
	} else {
		b.addf("MACAddress=%s", spec.MAC)
	}
	b.blank()
	b.addf("[Network]")

	if spec.DHCP == entities.DHCPUnset {
		if spec.IP4 != "" {
			b.addf("Address=%s", spec.IP4)
		}
		if spec.Gateway4 != "" {
			b.addf("Gateway=%s", spec.Gateway4)
		}
	} else {
		b.addf("DHCP=%s", spec.DHCP)
	}

	if spec.DNS4 != "" {
		b.addf("DNS=%s", spec.DNS4)
	}
	if spec.NTP != "" {
		b.addf("NTP=%s", spec.NTP)
	}
	if spec.Bridge != "" {
		b.addf("Bridge=%s", spec.Bridge)
	}

	if spec.VlanType == entities.VlanTypeHost {
		for _, vlan := range spec.VlanNames() {
			b.addf("VLAN=%s", vlan)
		}
		for _, macvlan := range spec.MacvlanNames() {
			b.addf("MACVLAN=%s", macvlan)
		}
	}

	return b.build() + "\n"
}

// lineBuilder는 렌더링된 줄의 추가 전용 목록입니다.
// 항목 순서를 명시적으로 유지해 내용 비교가 의미를 갖도록 합니다.
type lineBuilder struct {
	lines []string
}

func newLineBuilder() *lineBuilder {
	return &lineBuilder{}
}

func (b *lineBuilder) addf(format string, args ...interface{}) {
	if len(args) == 0 {
		b.lines = append(b.lines, format)
		return
	}
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *lineBuilder) blank() {
	b.lines = append(b.lines, "")
}

func (b *lineBuilder) build() string {
	return strings.Join(b.lines, "\n")
}
