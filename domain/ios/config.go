package ios

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	devicev1 "github.com/honeybbq/netjson/gen/go/netjson/device/v1"
	openwrtv1 "github.com/honeybbq/netjson/gen/go/netjson/openwrt/v1"

	helpers "github.com/honeybbq/iosconfig/domain/utils"
	ast "github.com/honeybbq/iosconfig/pkg/ast/ios"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/netaddr"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
	"github.com/honeybbq/iosconfig/pkg/options"
)

// 顶层块的位置，决定排序后的输出顺序。
const (
	PosServices   = 10
	PosSystem     = 20
	PosSecurity   = 30
	PosDNS        = 40
	PosInterfaces = 100
	PosRouting    = 200
	PosLogging    = 300
	PosNTP        = 310
	PosBanner     = 800
	PosLines      = 900
)

// BannerDelimiter 包围 banner motd 文本。
const BannerDelimiter = "^C"

// Config 表示 IOS 领域模型。
type Config struct {
	Message *openwrtv1.OpenWrtConfig
}

// FromProto 构造领域模型。
func FromProto(msg *openwrtv1.OpenWrtConfig) (*Config, error) {
	if msg == nil {
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("config is nil"))
	}
	return &Config{Message: msg}, nil
}

// ToAST builds the document: options first (defaults, NetJSON values,
// overrides), then positioned blocks, then a stable sort.
func (c *Config) ToAST(opts iosconfig.RenderOptions) (*ast.Document, error) {
	if c == nil || c.Message == nil {
		return nil, nxerrors.New(nxerrors.KindInternal, errors.New("config is nil"))
	}

	doc := ast.NewDocument()
	reg := doc.Options()
	if err := RegisterOptions(reg); err != nil {
		return nil, err
	}
	if err := applyModel(reg, c.Message); err != nil {
		return nil, err
	}
	if err := ApplyOverrides(reg, opts.Overrides); err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := reg.Validate(); err != nil {
			return nil, err
		}
	}

	b := &builder{doc: doc, reg: reg, msg: c.Message}
	// 按发现顺序添加，位置由排序统一决定。
	b.lines()
	b.banner()
	if err := b.interfaces(); err != nil {
		return nil, err
	}
	if err := b.routes(); err != nil {
		return nil, err
	}
	b.ntp()
	b.logging()
	b.dns()
	b.security()
	b.system()
	b.services()
	b.preamble(opts.GenerationTag)
	if b.err != nil {
		return nil, b.err
	}

	doc.SortBlocks()
	return doc, nil
}

// Files 返回需要随配置一起下发的附加文件。
func (c *Config) Files() ([]iosconfig.File, error) {
	if c == nil || c.Message == nil {
		return nil, nil
	}
	var files []iosconfig.File
	for _, file := range c.Message.GetFiles() {
		if file == nil || file.GetPath() == "" {
			continue
		}
		mode, err := helpers.ParseFileMode(file.GetMode())
		if err != nil {
			return nil, err
		}
		files = append(files, iosconfig.File{
			Path:    file.GetPath(),
			Mode:    mode,
			Content: []byte(file.GetContents()),
		})
	}
	return files, nil
}

// builder 记录第一个选项读取错误，避免每一行都检查。
type builder struct {
	doc      *ast.Document
	reg      *options.Registry
	msg      *openwrtv1.OpenWrtConfig
	gateways []string
	err      error
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) str(name string) string {
	v, err := b.reg.Value(name)
	if err != nil {
		b.fail(err)
	}
	return strings.TrimSpace(v)
}

func (b *builder) flag(name string) bool {
	v, err := helpers.OptionBool(b.reg, name)
	if err != nil {
		b.fail(err)
	}
	return v
}

func (b *builder) num(name string) int {
	opt, err := b.reg.Get(name)
	if err != nil {
		b.fail(err)
		return 0
	}
	n, err := opt.Int()
	if err != nil {
		b.fail(err)
	}
	return n
}

// flat creates a detached header-less block; attach drops it when empty.
func (b *builder) flat(name string, pos int) *ast.Block {
	return b.doc.NewBlock(name, pos, true)
}

func (b *builder) attach(block *ast.Block) {
	if !block.Empty() {
		b.doc.Attach(block)
	}
}

func (b *builder) preamble(tag string) {
	if version := b.str("ios-version"); version != "" {
		b.doc.AddLine("version " + version)
	}
	if tag != "" {
		b.doc.AddLine("! tag: " + tag)
	}
}

func (b *builder) services() {
	block := b.flat("services", PosServices)
	if b.flag("timestamps") {
		block.Line("service timestamps debug datetime msec")
		block.Line("service timestamps log datetime msec")
	}
	helpers.Toggle(block, b.flag("password-encryption"), "service password-encryption")
	b.attach(block)
}

func (b *builder) system() {
	block := b.flat("system", PosSystem)
	block.Line("hostname " + b.str("hostname"))
	if domain := b.str("domain-name"); domain != "" {
		block.Line("ip domain-name " + domain)
	}
	if tz := b.str("timezone"); tz != "" {
		block.Linef("clock timezone %s %d", tz, b.num("timezone-offset"))
	}
	helpers.Toggle(block, b.flag("ip-routing"), "ip routing")
	helpers.LineIf(block, b.flag("ipv6-routing"), "ipv6 unicast-routing")
	helpers.Toggle(block, b.flag("domain-lookup"), "ip domain-lookup")
	b.attach(block)
}

func (b *builder) security() {
	block := b.flat("security", PosSecurity)
	if secret := b.str("enable-secret"); secret != "" {
		block.Line("enable secret " + secret)
	}
	if version := b.num("ssh-version"); version > 0 {
		block.Linef("ip ssh version %d", version)
	}
	b.attach(block)
}

func (b *builder) dns() {
	block := b.flat("dns", PosDNS)
	if servers := helpers.JoinNonEmpty(b.msg.GetDnsServers(), " "); servers != "" {
		block.Line("ip name-server " + servers)
	}
	for _, domain := range b.msg.GetDnsSearch() {
		if domain = strings.TrimSpace(domain); domain != "" {
			block.Line("ip domain-list " + domain)
		}
	}
	b.attach(block)
}

func (b *builder) interfaces() error {
	for _, iface := range b.msg.GetInterfaces() {
		if iface == nil || iface.GetName() == "" {
			continue
		}
		block := b.doc.AddBlock("interface "+iface.GetName(), PosInterfaces, false)
		if strings.EqualFold(iface.GetType(), "bridge") && len(iface.GetBridgeMembers()) > 0 {
			block.Line("description bridge " + helpers.JoinNonEmpty(iface.GetBridgeMembers(), " "))
		}
		if iface.Mtu != nil && *iface.Mtu > 0 {
			block.Linef("mtu %d", *iface.Mtu)
		}
		if iface.Mac != nil && *iface.Mac != "" {
			mac, err := macToIOS(*iface.Mac)
			if err != nil {
				return err
			}
			block.Line("mac-address " + mac)
		}
		if err := b.addresses(block, iface); err != nil {
			return err
		}
		if iface.Disabled != nil && *iface.Disabled {
			block.Line("shutdown")
		} else {
			block.Line("no shutdown")
		}
	}
	return nil
}

func (b *builder) addresses(block *ast.Block, iface *devicev1.Interface) error {
	hasIPv4 := false
	for _, addr := range iface.GetAddresses() {
		if addr == nil {
			continue
		}
		switch addr.GetFamily() {
		case "ipv4", "":
			if addr.GetProto() == "dhcp" {
				block.Line("ip address dhcp")
				hasIPv4 = true
				continue
			}
			if addr.GetAddress() == "" {
				continue
			}
			prefix := int(addr.GetMask())
			if prefix == 0 {
				prefix = 32
			}
			mask, err := netaddr.PrefixToMask(prefix, false)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("ip address %s %s", addr.GetAddress(), mask)
			if hasIPv4 {
				line += " secondary"
			}
			block.Line(line)
			hasIPv4 = true
			if gw := addr.GetGateway(); gw != "" {
				b.gateways = append(b.gateways, gw)
			}
		case "ipv6":
			if addr.GetProto() == "dhcpv6" {
				block.Line("ipv6 address dhcp")
				continue
			}
			if addr.GetAddress() == "" {
				continue
			}
			value := addr.GetAddress()
			if mask := addr.GetMask(); mask != 0 {
				value = fmt.Sprintf("%s/%d", value, mask)
			}
			block.Line("ipv6 address " + value)
		}
	}
	if !hasIPv4 {
		block.Line("no ip address")
	}
	return nil
}

func (b *builder) routes() error {
	block := b.flat("routing", PosRouting)
	hasDefault := false
	for _, route := range b.msg.GetRoutes() {
		if route == nil || route.GetDestination() == "" {
			continue
		}
		next := route.GetNext()
		if next == "" {
			next = route.GetDevice()
		}
		if next == "" {
			return nxerrors.New(nxerrors.KindValidation, fmt.Errorf("route %q has neither next hop nor device", route.GetDestination()))
		}
		var distance string
		if route.Cost != nil && *route.Cost > 0 {
			distance = " " + strconv.FormatUint(uint64(*route.Cost), 10)
		}

		dest := route.GetDestination()
		if strings.Contains(dest, ":") {
			block.Linef("ipv6 route %s %s%s", dest, next, distance)
			continue
		}
		if !strings.Contains(dest, "/") {
			dest += "/32"
		}
		addr, prefix, err := netaddr.Split(dest)
		if err != nil {
			return err
		}
		network, err := netaddr.NetworkAddress(addr.String(), prefix)
		if err != nil {
			return err
		}
		mask, err := netaddr.PrefixToMask(prefix, false)
		if err != nil {
			return err
		}
		if prefix == 0 {
			hasDefault = true
		}
		block.Linef("ip route %s %s %s%s", network, mask, next, distance)
	}
	if !hasDefault && len(b.gateways) > 0 {
		block.Line("ip route 0.0.0.0 0.0.0.0 " + b.gateways[0])
	}
	b.attach(block)
	return nil
}

func (b *builder) ntp() {
	ntp := b.msg.GetNtp()
	if ntp == nil || (ntp.Enabled != nil && !*ntp.Enabled) {
		return
	}
	block := b.flat("ntp", PosNTP)
	for _, server := range ntp.GetServers() {
		if server = strings.TrimSpace(server); server != "" {
			block.Line("ntp server " + server)
		}
	}
	b.attach(block)
}

func (b *builder) logging() {
	block := b.flat("logging", PosLogging)
	if host := b.str("logging-host"); host != "" {
		block.Line("logging host " + host)
	}
	b.attach(block)
}

func (b *builder) banner() {
	text := b.str("banner")
	if text == "" {
		return
	}
	block := b.flat("banner", PosBanner)
	block.Line("banner motd " + BannerDelimiter)
	block.Line(text)
	block.Line(BannerDelimiter)
	b.attach(block)
}

// lines 先构造未挂载的 line 块，再放入一个扁平的包装块。
func (b *builder) lines() {
	timeout := b.num("exec-timeout")

	console := b.doc.NewBlock("line con 0", ast.PosEnd, false)
	console.Linef("exec-timeout %d 0", timeout)
	console.Line("logging synchronous")

	vty := b.doc.NewBlock(fmt.Sprintf("line vty 0 %d", b.num("vty-lines")), ast.PosEnd, false)
	vty.Linef("exec-timeout %d 0", timeout)
	vty.Line("login local")
	if transport := b.str("vty-transport"); transport != "" {
		vty.Line("transport input " + transport)
	}

	b.doc.AddBlock("lines", PosLines, true).AppendBlock(console).AppendBlock(vty)
}

// macToIOS 将 aa:bb:cc:dd:ee:ff 转换为 IOS 的 aabb.ccdd.eeff 写法。
func macToIOS(mac string) (string, error) {
	hex := strings.NewReplacer(":", "", "-", "", ".", "").Replace(strings.ToLower(mac))
	if len(hex) != 12 {
		return "", nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid mac address %q", mac))
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid mac address %q", mac))
		}
	}
	return hex[0:4] + "." + hex[4:8] + "." + hex[8:12], nil
}
