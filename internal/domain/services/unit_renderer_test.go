package services

import (
	"testing"

	"networkd-agent/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, params entities.SpecParams) *entities.InterfaceSpec {
	t.Helper()
	spec, err := entities.NewInterfaceSpec(params)
	require.NoError(t, err)
	return spec
}

func TestUnitRenderer_RenderLink(t *testing.T) {
	renderer := NewUnitRenderer()

	spec := mustSpec(t, entities.SpecParams{
		Name: "eth0",
		MAC:  "00:11:22:33:44:55",
	})

	expected := "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Link]\nName=eth0\n"
	assert.Equal(t, expected, renderer.RenderLink(spec))
}

func TestUnitRenderer_RenderNetDev(t *testing.T) {
	renderer := NewUnitRenderer()

	tests := []struct {
		name     string
		params   entities.SpecParams
		expected string
	}{
		{
			name: "MAC 없는 브리지",
			params: entities.SpecParams{
				Name:       "br-vlan",
				Kind:       "bridge",
				BridgeType: "vlan",
			},
			expected: "[NetDev]\nName=br-vlan\nKind=bridge\n",
		},
		{
			name: "MAC 있는 브리지",
			params: entities.SpecParams{
				Name: "br0",
				Kind: "bridge",
				MAC:  "00:11:22:33:44:55",
			},
			expected: "[NetDev]\nName=br0\nKind=bridge\n\nMACAddress=00:11:22:33:44:55",
		},
		{
			name: "vlan 인터페이스",
			params: entities.SpecParams{
				Name: "internet",
				Kind: "vlan",
				Vlan: "10",
			},
			expected: "[NetDev]\nName=internet\nKind=vlan\n\n[VLAN]\nId=10",
		},
		{
			name: "MAC 있는 vlan 인터페이스",
			params: entities.SpecParams{
				Name: "internet",
				Kind: "vlan",
				Vlan: "10",
				MAC:  "aa:bb:cc:dd:ee:ff",
			},
			expected: "[NetDev]\nName=internet\nKind=vlan\nMACAddress=aa:bb:cc:dd:ee:ff\n\n[VLAN]\nId=10",
		},
		{
			name: "macvlan 인터페이스",
			params: entities.SpecParams{
				Name: "mgmt",
				Kind: "macvlan",
				MAC:  "aa:bb:cc:dd:ee:ff",
			},
			expected: "[NetDev]\nName=mgmt\nKind=macvlan\nMACAddress=aa:bb:cc:dd:ee:ff\n\n[MACVLAN]\nMode=bridge",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, tt.params)
			assert.Equal(t, tt.expected, renderer.RenderNetDev(spec))
		})
	}
}

func TestUnitRenderer_RenderNetwork(t *testing.T) {
	renderer := NewUnitRenderer()

	tests := []struct {
		name     string
		params   entities.SpecParams
		expected string
	}{
		{
			name: "정적 주소 인터페이스는 Address/Gateway 순서 고정",
			params: entities.SpecParams{
				Name:     "eth0",
				MAC:      "00:11:22:33:44:55",
				IP4:      "192.168.1.10/24",
				Gateway4: "192.168.1.1",
				DNS4:     "192.168.1.1",
			},
			expected: "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Network]\nAddress=192.168.1.10/24\nGateway=192.168.1.1\nDNS=192.168.1.1\n",
		},
		{
			name: "DHCP 인터페이스는 Address 대신 DHCP 항목",
			params: entities.SpecParams{
				Name: "eth0",
				MAC:  "00:11:22:33:44:55",
				DHCP: "ipv4",
			},
			expected: "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Network]\nDHCP=ipv4\n",
		},
		{
			name: "vlan 인터페이스는 이름으로 매칭",
			params: entities.SpecParams{
				Name: "internet",
				Kind: "vlan",
				Vlan: "10",
				IP4:  "10.0.10.2/24",
			},
			expected: "[Match]\nName=internet\n\n[Network]\nAddress=10.0.10.2/24\n",
		},
		{
			name: "브리지 멤버는 Bridge 항목을 가짐",
			params: entities.SpecParams{
				Name:   "eth1",
				MAC:    "00:11:22:33:44:66",
				Bridge: "br0",
			},
			expected: "[Match]\nMACAddress=00:11:22:33:44:66\n\n[Network]\nBridge=br0\n",
		},
		{
			name: "host vlan은 VLAN/MACVLAN 항목을 입력 순서대로 나열",
			params: entities.SpecParams{
				Name:     "eth0",
				MAC:      "00:11:22:33:44:55",
				DHCP:     "ipv4",
				VlanType: "host",
				Vlan:     "internet iot",
				Macvlan:  "mgmt",
			},
			expected: "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Network]\nDHCP=ipv4\nVLAN=internet\nVLAN=iot\nMACVLAN=mgmt\n",
		},
		{
			name: "NTP 항목은 DNS 다음에 위치",
			params: entities.SpecParams{
				Name: "eth0",
				MAC:  "00:11:22:33:44:55",
				DHCP: "no",
				DNS4: "1.1.1.1",
				NTP:  "pool.ntp.org",
			},
			expected: "[Match]\nMACAddress=00:11:22:33:44:55\n\n[Network]\nDHCP=no\nDNS=1.1.1.1\nNTP=pool.ntp.org\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, tt.params)
			assert.Equal(t, tt.expected, renderer.RenderNetwork(spec))
		})
	}
}

func TestUnitRenderer_UnitFiles(t *testing.T) {
	renderer := NewUnitRenderer()
	unitDir := "/etc/systemd/network"

	t.Run("simple 인터페이스는 link와 network 파일 생성", func(t *testing.T) {
		spec := mustSpec(t, entities.SpecParams{Name: "eth0", MAC: "00:11:22:33:44:55"})

		files := renderer.UnitFiles(spec, unitDir)

		require.Len(t, files, 2)
		assert.Equal(t, "/etc/systemd/network/eth0.link", files[0].Path)
		assert.Equal(t, entities.ClassLink, files[0].Class)
		assert.Equal(t, "/etc/systemd/network/eth0.network", files[1].Path)
		assert.Equal(t, entities.ClassNetwork, files[1].Class)
	})

	t.Run("vlan 인터페이스는 netdev와 network 파일 생성", func(t *testing.T) {
		spec := mustSpec(t, entities.SpecParams{Name: "internet", Kind: "vlan", Vlan: "10"})

		files := renderer.UnitFiles(spec, unitDir)

		require.Len(t, files, 2)
		assert.Equal(t, entities.ClassNetDev, files[0].Class)
		assert.Equal(t, entities.ClassNetwork, files[1].Class)
	})

	t.Run("bond 인터페이스는 network 파일만 생성", func(t *testing.T) {
		spec := mustSpec(t, entities.SpecParams{Name: "bond0", Kind: "bond", MAC: "00:11:22:33:44:55"})

		files := renderer.UnitFiles(spec, unitDir)

		require.Len(t, files, 1)
		assert.Equal(t, entities.ClassNetwork, files[0].Class)
	})

	t.Run("같은 스펙은 항상 같은 내용을 생성", func(t *testing.T) {
		params := entities.SpecParams{
			Name:     "eth0",
			MAC:      "00:11:22:33:44:55",
			VlanType: "host",
			Vlan:     "internet iot guest",
			DHCP:     "ipv4",
		}

		first := renderer.UnitFiles(mustSpec(t, params), unitDir)
		second := renderer.UnitFiles(mustSpec(t, params), unitDir)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Content, second[i].Content)
		}
	})
}
