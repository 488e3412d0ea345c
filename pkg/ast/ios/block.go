package ios

import (
	"fmt"
	"math"
	"strings"
)

// PosEnd 表示"追加到末尾"：排在所有显式位置之后，并保持插入顺序。
const PosEnd = math.MaxInt

// Indent 是每一级嵌套的缩进。
const Indent = " "

// Marker 是块之间的分隔行。
const Marker = "!"

// Block 是可定位、可嵌套的配置片段：一行 header 加若干原始行与子块。
//
// position 只在 Document 对顶层块排序时使用，子块按追加顺序渲染。
type Block struct {
	header   string
	position int
	flat     bool
	footer   string
	children []node
}

// node 要么是一行原始文本，要么是子块。
type node struct {
	line  string
	block *Block
}

// NewBlock 创建未挂载的 Block。
func NewBlock(header string, position int, flat bool) *Block {
	return &Block{
		header:   header,
		position: position,
		flat:     flat,
	}
}

func (b *Block) Header() string { return b.header }
func (b *Block) Position() int  { return b.position }
func (b *Block) Flat() bool     { return b.flat }
func (b *Block) Footer() string { return b.footer }

// SetPosition changes the ordering key used by Document.SortBlocks.
func (b *Block) SetPosition(pos int) *Block {
	b.position = pos
	return b
}

// SetFooter sets a closing line rendered after the body at the header's
// depth, e.g. "exit-address-family". Flat blocks ignore it.
func (b *Block) SetFooter(footer string) *Block {
	b.footer = footer
	return b
}

// Line appends a raw line to the block body.
func (b *Block) Line(line string) *Block {
	b.children = append(b.children, node{line: line})
	return b
}

// Linef appends a formatted raw line to the block body.
func (b *Block) Linef(format string, args ...any) *Block {
	return b.Line(fmt.Sprintf(format, args...))
}

// AddBlock creates a child block and returns it so the caller can keep
// filling it in.
func (b *Block) AddBlock(header string, position int, flat bool) *Block {
	child := NewBlock(header, position, flat)
	b.children = append(b.children, node{block: child})
	return child
}

// AppendBlock attaches a block built elsewhere (see Document.NewBlock).
// The parent takes ownership; a nil child is ignored.
func (b *Block) AppendBlock(child *Block) *Block {
	if child != nil {
		b.children = append(b.children, node{block: child})
	}
	return b
}

// Lines 返回块自身的原始行（不含子块）。
func (b *Block) Lines() []string {
	var lines []string
	for _, n := range b.children {
		if n.block == nil {
			lines = append(lines, n.line)
		}
	}
	return lines
}

// Children 返回直接子块。
func (b *Block) Children() []*Block {
	var blocks []*Block
	for _, n := range b.children {
		if n.block != nil {
			blocks = append(blocks, n.block)
		}
	}
	return blocks
}

// Empty reports whether the block has no body.
func (b *Block) Empty() bool {
	return len(b.children) == 0
}

// String renders the block at depth zero.
func (b *Block) String() string {
	var sb strings.Builder
	b.render(&sb, 0)
	return sb.String()
}

func (b *Block) render(sb *strings.Builder, depth int) {
	bodyDepth := depth
	if !b.flat {
		writeLine(sb, depth, b.header)
		bodyDepth = depth + 1
	}
	for _, n := range b.children {
		if n.block == nil {
			writeLine(sb, bodyDepth, n.line)
			continue
		}
		n.block.render(sb, bodyDepth)
		if !n.block.flat && n.block.footer == "" {
			writeLine(sb, bodyDepth, Marker)
		}
	}
	if !b.flat && b.footer != "" {
		writeLine(sb, depth, b.footer)
	}
}

// writeLine 按深度缩进写入一行；多行文本逐行缩进，空行不带缩进。
func writeLine(sb *strings.Builder, depth int, text string) {
	prefix := strings.Repeat(Indent, depth)
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
}
