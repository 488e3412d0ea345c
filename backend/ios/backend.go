package ios

import (
	"context"
	"errors"

	openwrtv1 "github.com/honeybbq/netjson/gen/go/netjson/openwrt/v1"

	"google.golang.org/protobuf/proto"

	domain "github.com/honeybbq/iosconfig/domain/ios"
	ast "github.com/honeybbq/iosconfig/pkg/ast/ios"
	"github.com/honeybbq/iosconfig/pkg/ctxlog"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
	"github.com/honeybbq/iosconfig/pkg/renderer"
)

// Backend 实现 NetJSON → IOS 配置文本转换。
type Backend struct {
	renderer renderer.Renderer[*ast.Document]
}

// New 构造 Backend。
func New(r renderer.Renderer[*ast.Document]) *Backend {
	return &Backend{renderer: r}
}

// Name 实现 Backend 接口。
func (b *Backend) Name() string {
	return "ios"
}

// ToNative 实现前向转换。
func (b *Backend) ToNative(ctx context.Context, cfg proto.Message, opts iosconfig.RenderOptions) (*iosconfig.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	msg, ok := cfg.(*openwrtv1.OpenWrtConfig)
	if !ok {
		return nil, nxerrors.New(nxerrors.KindValidation, errors.New("expected OpenWrtConfig payload"))
	}
	domainCfg, err := domain.FromProto(msg)
	if err != nil {
		return nil, err
	}
	doc, err := domainCfg.ToAST(opts)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("built ios document",
		"blocks", len(doc.Blocks()),
		"options", doc.Options().Len(),
	)

	bundle, err := b.renderer.Render(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	files, err := domainCfg.Files()
	if err != nil {
		return nil, err
	}
	bundle.Files = append(bundle.Files, files...)
	return bundle, nil
}

// ToNetJSON 不支持：本系统只负责生成。
func (b *Backend) ToNetJSON(ctx context.Context, bundle *iosconfig.Bundle) (proto.Message, error) {
	return nil, nxerrors.New(nxerrors.KindUnsupported, errors.New("ios configuration parsing is not supported"))
}
