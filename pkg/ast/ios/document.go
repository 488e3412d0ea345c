package ios

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/honeybbq/iosconfig/pkg/options"
)

// DefaultIdentity 出现在生成横幅中。
const DefaultIdentity = "iosconfig"

// BannerTimeFormat is the RFC 2822 style timestamp used in the banner.
const BannerTimeFormat = time.RFC1123Z

// Document 表示完整的设备配置：头部原始行、顶层块以及选项注册表。
//
// Document 不做并发保护；渲染是只读投影，可随时调用。
type Document struct {
	identity string
	now      func() time.Time
	trailer  string
	lines    []string
	blocks   []*Block
	opts     *options.Registry
}

// NewDocument 创建空 Document。
func NewDocument() *Document {
	return &Document{
		identity: DefaultIdentity,
		now:      time.Now,
		opts:     options.NewRegistry(),
	}
}

// SetIdentity sets the tool identity shown in the banner.
func (d *Document) SetIdentity(identity string) {
	if identity != "" {
		d.identity = identity
	}
}

// SetClock replaces the banner clock. A nil clock restores time.Now.
func (d *Document) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	d.now = now
}

// SetTrailer sets a line emitted after the last block, e.g. "end".
func (d *Document) SetTrailer(trailer string) {
	d.trailer = trailer
}

// AddLine appends a raw header line, rendered verbatim before any block.
func (d *Document) AddLine(line string) {
	d.lines = append(d.lines, line)
}

// AddBlock creates a top-level block, attaches it and returns it for
// further configuration.
func (d *Document) AddBlock(header string, position int, flat bool) *Block {
	block := NewBlock(header, position, flat)
	d.blocks = append(d.blocks, block)
	return block
}

// NewBlock creates a block without attaching it anywhere.
func (d *Document) NewBlock(header string, position int, flat bool) *Block {
	return NewBlock(header, position, flat)
}

// Attach appends a detached block to the top-level list.
func (d *Document) Attach(block *Block) {
	if block != nil {
		d.blocks = append(d.blocks, block)
	}
}

// CompareBlocks orders blocks by ascending position.
func CompareBlocks(a, b *Block) int {
	return cmp.Compare(a.position, b.position)
}

// SortBlocks 按 position 升序稳定排序顶层块，相同 position 保持插入顺序。
// 子块不参与排序。
func (d *Document) SortBlocks() {
	slices.SortStableFunc(d.blocks, CompareBlocks)
}

// Lines 返回头部原始行。
func (d *Document) Lines() []string {
	return d.lines
}

// Blocks 返回当前顺序下的顶层块。
func (d *Document) Blocks() []*Block {
	return d.blocks
}

// Options 返回文档持有的选项注册表。
func (d *Document) Options() *options.Registry {
	return d.opts
}

// AddOpt registers an option; see options.Registry.Add.
func (d *Document) AddOpt(name, value string, settings ...options.Setting) error {
	_, err := d.opts.Add(name, value, settings...)
	return err
}

// OptVal returns the current value of a registered option.
func (d *Document) OptVal(name string) (string, error) {
	return d.opts.Value(name)
}

// SetOptVal overwrites the current value of a registered option.
func (d *Document) SetOptVal(name, value string) error {
	return d.opts.SetValue(name, value)
}

// SetOptDefaultValue overrides the default of a registered option.
func (d *Document) SetOptDefaultValue(name, value string) error {
	return d.opts.SetDefaultValue(name, value)
}

// Config renders the banner, the header lines and every top-level block in
// its current order, each preceded by a separator line. Call SortBlocks
// first for position order.
func (d *Document) Config() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "!! Generated by %s - %s\n", d.identity, d.now().Format(BannerTimeFormat))
	if len(d.lines) > 0 {
		sb.WriteString(strings.Join(d.lines, "\n"))
		sb.WriteByte('\n')
	}
	for _, block := range d.blocks {
		sb.WriteString(Marker)
		sb.WriteByte('\n')
		block.render(&sb, 0)
	}
	if d.trailer != "" {
		sb.WriteString(Marker)
		sb.WriteByte('\n')
		sb.WriteString(d.trailer)
		sb.WriteByte('\n')
	}
	return sb.String()
}
