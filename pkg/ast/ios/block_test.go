package ios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockRendersHeaderAndIndentedBody(t *testing.T) {
	b := NewBlock("interface GigabitEthernet0/1", PosEnd, false)
	b.Line("description uplink").Linef("ip address %s %s", "10.0.0.1", "255.255.255.0")

	want := "interface GigabitEthernet0/1\n" +
		" description uplink\n" +
		" ip address 10.0.0.1 255.255.255.0\n"
	assert.Equal(t, want, b.String())
}

func TestBlockNestedLineIsIndentedTwice(t *testing.T) {
	outer := NewBlock("policy-map WAN", PosEnd, false)
	inner := outer.AddBlock("class VOICE", PosEnd, false)
	inner.Line("priority percent 20")

	want := "policy-map WAN\n" +
		" class VOICE\n" +
		"  priority percent 20\n" +
		" !\n"
	assert.Equal(t, want, outer.String())
}

func TestBlockFooterReplacesMarker(t *testing.T) {
	bgp := NewBlock("router bgp 65000", PosEnd, false)
	bgp.Line("bgp log-neighbor-changes")
	af := bgp.AddBlock("address-family ipv4", PosEnd, false)
	af.Line("network 10.0.0.0 mask 255.255.255.0")
	af.SetFooter("exit-address-family")

	want := "router bgp 65000\n" +
		" bgp log-neighbor-changes\n" +
		" address-family ipv4\n" +
		"  network 10.0.0.0 mask 255.255.255.0\n" +
		" exit-address-family\n"
	assert.Equal(t, want, bgp.String())
}

func TestFlatBlockOmitsHeader(t *testing.T) {
	b := NewBlock("services", PosEnd, true)
	b.Line("service timestamps debug datetime msec").Line("ip routing")
	b.SetFooter("ignored")

	want := "service timestamps debug datetime msec\n" +
		"ip routing\n"
	assert.Equal(t, want, b.String())
}

func TestFlatBlockWrapsChildBlocks(t *testing.T) {
	lines := NewBlock("lines", PosEnd, true)
	con := NewBlock("line con 0", PosEnd, false).Line("logging synchronous")
	vty := NewBlock("line vty 0 4", PosEnd, false).Line("transport input ssh")
	lines.AppendBlock(con).AppendBlock(vty).AppendBlock(nil)

	want := "line con 0\n" +
		" logging synchronous\n" +
		"!\n" +
		"line vty 0 4\n" +
		" transport input ssh\n" +
		"!\n"
	assert.Equal(t, want, lines.String())
	assert.Len(t, lines.Children(), 2)
	assert.Empty(t, lines.Lines())
}

func TestBlockChildrenKeepAppendOrder(t *testing.T) {
	parent := NewBlock("parent", PosEnd, false)
	parent.AddBlock("second", 9, true).Line("b")
	parent.AddBlock("first", 1, true).Line("a")

	assert.Equal(t, "parent\n b\n a\n", parent.String())
}

func TestBlockMultilineAndEmptyLines(t *testing.T) {
	b := NewBlock("banner", PosEnd, false)
	b.Line("one\ntwo").Line("")

	assert.Equal(t, "banner\n one\n two\n\n", b.String())
}

func TestBlockRenderIsPure(t *testing.T) {
	b := NewBlock("router ospf 1", 3, false)
	b.Line("network 10.0.0.0 0.0.0.255 area 0")
	b.AddBlock("nested", PosEnd, false).Line("x")

	first := b.String()
	require.Equal(t, first, b.String())
	assert.Equal(t, 3, b.Position())
	assert.False(t, b.Empty())
	assert.True(t, NewBlock("x", PosEnd, false).Empty())
}
