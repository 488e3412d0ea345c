package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

func TestNewOptionDefaults(t *testing.T) {
	opt := New("hostname", "router1")

	assert.Equal(t, "hostname", opt.Name())
	assert.Equal(t, "router1", opt.Value())
	assert.Equal(t, "router1", opt.DefaultValue())
	assert.Equal(t, TypeText, opt.Type())
	assert.Equal(t, "", opt.Description())
	assert.Equal(t, DefaultGroup, opt.Group())
}

func TestOptionSetDefaultKeepsValue(t *testing.T) {
	opt := New("domain", "example.net", WithGroup("System"))
	opt.SetValue("corp.example.net")
	opt.SetDefaultValue("lab.example.net")

	assert.Equal(t, "corp.example.net", opt.Value())
	assert.False(t, opt.IsDefault())

	opt.Reset()
	assert.Equal(t, "lab.example.net", opt.Value())
	assert.True(t, opt.IsDefault())
}

func TestOptionTypedReads(t *testing.T) {
	assert.True(t, New("a", "yes").Bool())
	assert.True(t, New("a", "1").Bool())
	assert.False(t, New("a", "").Bool())

	n, err := New("mtu", " 1500 ").Int()
	require.NoError(t, err)
	assert.Equal(t, 1500, n)

	_, err = New("mtu", "big").Int()
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindValidation))
}

func TestRegistryScenario(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("hostname", "router1")
	require.NoError(t, err)

	got, err := r.Value("hostname")
	require.NoError(t, err)
	assert.Equal(t, "router1", got)

	require.NoError(t, r.SetValue("hostname", "core-sw1"))
	got, err = r.Value("hostname")
	require.NoError(t, err)
	assert.Equal(t, "core-sw1", got)

	_, err = r.Value("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nxerrors.ErrUnknownOption))
	assert.Contains(t, err.Error(), `unknown option "missing"`)
}

func TestRegistryMutatorsRejectUnknown(t *testing.T) {
	r := NewRegistry()

	assert.True(t, nxerrors.IsKind(r.SetValue("nope", "x"), nxerrors.KindLookup))
	assert.True(t, nxerrors.IsKind(r.SetDefaultValue("nope", "x"), nxerrors.KindLookup))
	_, err := r.Get("nope")
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindLookup))
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("  ", "x")
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindValidation))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryLastWriteWinsKeepsOrder(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("a", "1")
	_, _ = r.Add("b", "2")
	_, _ = r.Add("a", "3", WithGroup("Other"))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name())
	assert.Equal(t, "3", all[0].Value())
	assert.Equal(t, "Other", all[0].Group())
	assert.Equal(t, "b", all[1].Name())
}

func TestRegistryOptionsAreShared(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("hostname", "router1")

	r.Map()["hostname"].SetValue("edge1")
	got, err := r.Value("hostname")
	require.NoError(t, err)
	assert.Equal(t, "edge1", got)
}

func TestRegistryByGroup(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("hostname", "r1", WithGroup("System"))
	_, _ = r.Add("ntp", "", WithGroup("Services"))
	_, _ = r.Add("domain", "", WithGroup("System"))
	_, _ = r.Add("misc", "")

	groups := r.ByGroup()
	require.Len(t, groups, 3)
	assert.Equal(t, "System", groups[0].Name)
	assert.Equal(t, "Services", groups[1].Name)
	assert.Equal(t, DefaultGroup, groups[2].Name)

	names := make([]string, 0, len(groups[0].Options))
	for _, opt := range groups[0].Options {
		names = append(names, opt.Name())
	}
	assert.Equal(t, []string{"hostname", "domain"}, names)

	total := 0
	for _, g := range groups {
		total += len(g.Options)
	}
	assert.Equal(t, r.Len(), total)
}

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("routing", "true", WithType(TypeBool))
	_, _ = r.Add("mtu", "1500", WithType(TypeInt))
	_, _ = r.Add("gw", "10.0.0.1", WithType(TypeIP))
	_, _ = r.Add("lan", "10.0.0.0/24", WithType(TypeCIDR))
	_, _ = r.Add("empty", "", WithType(TypeIP))
	require.NoError(t, r.Validate())

	require.NoError(t, r.SetValue("mtu", "jumbo"))
	require.NoError(t, r.SetValue("gw", "10.0.0"))
	err := r.Validate()
	require.Error(t, err)
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindValidation))
	assert.Contains(t, err.Error(), `"mtu"`)
	assert.Contains(t, err.Error(), `"gw"`)
}

func TestRegistryToStruct(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add("hostname", "router1", WithDescription("Device hostname"), WithGroup("System"))

	st, err := r.ToStruct()
	require.NoError(t, err)

	entry := st.GetFields()["hostname"].GetStructValue().GetFields()
	assert.Equal(t, "router1", entry["value"].GetStringValue())
	assert.Equal(t, "Device hostname", entry["description"].GetStringValue())
	assert.Equal(t, "System", entry["group"].GetStringValue())
	assert.Equal(t, TypeText, entry["type"].GetStringValue())
}
