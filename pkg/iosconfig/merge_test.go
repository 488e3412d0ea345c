package iosconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

func mergeToMap(t *testing.T, layers ...string) map[string]any {
	t.Helper()
	raw := make([][]byte, 0, len(layers))
	for _, l := range layers {
		raw = append(raw, []byte(l))
	}
	merged, err := MergeJSON(raw, nil)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(merged, &result))
	return result
}

func TestMergeScalarsAndObjects(t *testing.T) {
	result := mergeToMap(t,
		`{"general": {"hostname": "template", "timezone": "UTC"}}`,
		`{"general": {"hostname": "core-sw1"}}`,
	)

	general := result["general"].(map[string]any)
	assert.Equal(t, "core-sw1", general["hostname"])
	assert.Equal(t, "UTC", general["timezone"])
}

func TestMergeInterfacesByName(t *testing.T) {
	result := mergeToMap(t,
		`{"interfaces": [{"name": "Gi0/1", "type": "ethernet", "mtu": 1500}]}`,
		`{"interfaces": [{"name": "Gi0/1", "mtu": 9000}, {"name": "Gi0/2", "type": "ethernet"}]}`,
	)

	ifaces := result["interfaces"].([]any)
	require.Len(t, ifaces, 2)
	first := ifaces[0].(map[string]any)
	assert.Equal(t, "Gi0/1", first["name"])
	assert.Equal(t, "ethernet", first["type"])
	assert.Equal(t, float64(9000), first["mtu"])
	assert.Equal(t, "Gi0/2", ifaces[1].(map[string]any)["name"])
}

func TestMergeRoutesByDestination(t *testing.T) {
	result := mergeToMap(t,
		`{"routes": [{"destination": "0.0.0.0/0", "next": "10.0.0.1"}]}`,
		`{"routes": [{"destination": "0.0.0.0/0", "next": "10.0.0.254"}, {"destination": "172.16.0.0/12", "next": "10.0.0.2"}]}`,
	)

	routes := result["routes"].([]any)
	require.Len(t, routes, 2)
	assert.Equal(t, "10.0.0.254", routes[0].(map[string]any)["next"])
}

func TestMergeThreeLayers(t *testing.T) {
	result := mergeToMap(t,
		`{"dns_servers": ["8.8.8.8"], "interfaces": [{"name": "Gi0/0", "mtu": 1500, "type": "ethernet"}]}`,
		`{"dns_servers": ["1.1.1.1"], "interfaces": [{"name": "Gi0/0", "type": "other"}]}`,
		`{"interfaces": [{"name": "Gi0/0", "mtu": 1400}]}`,
	)

	assert.Equal(t, []any{"8.8.8.8", "1.1.1.1"}, result["dns_servers"])
	iface := result["interfaces"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1400), iface["mtu"])
	assert.Equal(t, "other", iface["type"])
}

func TestMergeSkipsExactDuplicates(t *testing.T) {
	result := mergeToMap(t,
		`{"files": [{"path": "/flash/a", "contents": "x"}]}`,
		`{"files": [{"path": "/flash/a", "contents": "x"}, {"path": "/flash/b", "contents": "y"}]}`,
	)

	assert.Len(t, result["files"].([]any), 2)
}

func TestMergeDoesNotAliasLayers(t *testing.T) {
	m := merger{identifiers: DefaultIdentifiers}
	base := map[string]any{"general": map[string]any{"hostname": "a"}}

	out := m.mergeMaps(base, map[string]any{"extra": true})
	out["general"].(map[string]any)["hostname"] = "changed"

	assert.Equal(t, "a", base["general"].(map[string]any)["hostname"])
}

func TestMergeErrors(t *testing.T) {
	_, err := MergeJSON(nil, nil)
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindValidation))

	_, err = MergeJSON([][]byte{[]byte(`{`)}, nil)
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindValidation))
}

func TestNewBundleMetadata(t *testing.T) {
	a := NewBundle("ios", "ios")
	b := NewBundle("ios", "ios")

	assert.NotEmpty(t, a.Metadata.Custom[GenerationIDKey])
	assert.NotEqual(t, a.Metadata.Custom[GenerationIDKey], b.Metadata.Custom[GenerationIDKey])
	_, ok := a.Main()
	assert.False(t, ok)
}
