package renderer

import (
	"context"

	"github.com/honeybbq/iosconfig/pkg/iosconfig"
)

// Renderer 定义文本渲染接口，使用泛型约束文档类型。
type Renderer[T any] interface {
	Render(ctx context.Context, doc T, opts iosconfig.RenderOptions) (*iosconfig.Bundle, error)
}
