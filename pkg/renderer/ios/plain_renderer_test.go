package ios

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ast "github.com/honeybbq/iosconfig/pkg/ast/ios"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

func TestRenderProducesSinglePackage(t *testing.T) {
	doc := ast.NewDocument()
	doc.AddBlock("interface Gi0/1", 1, false).Line("no shutdown")

	clock := func() time.Time { return time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC) }
	bundle, err := NewPlainTextRenderer().Render(context.Background(), doc, iosconfig.RenderOptions{
		Identity:      "lab",
		Clock:         clock,
		Trailer:       "end",
		GenerationTag: "v1",
	})
	require.NoError(t, err)

	main, ok := bundle.Main()
	require.True(t, ok)
	assert.Equal(t, PackageName, main.Name)
	assert.Equal(t, "!! Generated by lab - Fri, 02 Jan 2026 03:04:05 +0000\n"+
		"!\n"+
		"interface Gi0/1\n"+
		" no shutdown\n"+
		"!\n"+
		"end\n", string(main.Content))
	assert.Equal(t, "ios", bundle.Metadata.Format)
	assert.Equal(t, "v1", bundle.Metadata.Version)
}

func TestRenderRejectsNilDocument(t *testing.T) {
	_, err := NewPlainTextRenderer().Render(context.Background(), nil, iosconfig.RenderOptions{})
	assert.True(t, nxerrors.IsKind(err, nxerrors.KindRender))
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlainTextRenderer().Render(ctx, ast.NewDocument(), iosconfig.RenderOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
