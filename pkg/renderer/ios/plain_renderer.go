package ios

import (
	"context"
	"fmt"

	ast "github.com/honeybbq/iosconfig/pkg/ast/ios"
	"github.com/honeybbq/iosconfig/pkg/ctxlog"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// PackageName 是渲染结果中主配置包的名称。
const PackageName = "startup-config"

// PlainTextRenderer 将 IOS AST 渲染为纯文本配置。
type PlainTextRenderer struct{}

func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// Render 实现 renderer.Renderer。块顺序由调用方决定（通常已调用 SortBlocks）。
func (r *PlainTextRenderer) Render(ctx context.Context, doc *ast.Document, opts iosconfig.RenderOptions) (*iosconfig.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if doc == nil {
		return nil, nxerrors.New(nxerrors.KindRender, fmt.Errorf("ios document is nil"))
	}

	if opts.Identity != "" {
		doc.SetIdentity(opts.Identity)
	}
	if opts.Clock != nil {
		doc.SetClock(opts.Clock)
	}
	if opts.Trailer != "" {
		doc.SetTrailer(opts.Trailer)
	}

	bundle := iosconfig.NewBundle("ios", "ios")
	if opts.GenerationTag != "" {
		bundle.Metadata.Version = opts.GenerationTag
	}
	content := doc.Config()
	bundle.Packages = append(bundle.Packages, iosconfig.Package{
		Name:    PackageName,
		Content: []byte(content),
	})

	ctxlog.FromContext(ctx).Debug("rendered ios document",
		"blocks", len(doc.Blocks()),
		"header_lines", len(doc.Lines()),
		"bytes", len(content),
		"generation_id", bundle.Metadata.Custom[iosconfig.GenerationIDKey],
	)
	return bundle, nil
}
