package integration

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	iosbackend "github.com/honeybbq/iosconfig/backend/ios"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/profile"
	iosrenderer "github.com/honeybbq/iosconfig/pkg/renderer/ios"
)

func newBackend() *iosbackend.Backend {
	return iosbackend.New(iosrenderer.NewPlainTextRenderer())
}

func TestIOSLayeredDeviceGolden(t *testing.T) {
	t.Parallel()

	msg := loadLayers(t, "site.json", "device.json")

	p, err := profile.Load(testdataPath("ios", "lab.toml"))
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	opts := iosconfig.RenderOptions{
		Clock:   fixedClock,
		Trailer: "end",
		Strict:  true,
	}
	p.Apply(&opts)

	bundle, err := newBackend().ToNative(context.Background(), msg, opts)
	if err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}

	want := string(readTestdata(t, "ios", "device.cfg"))
	assertConfig(t, mainConfig(t, bundle), want)

	if bundle.Metadata.Version != "r42" {
		t.Errorf("version mismatch: got %q", bundle.Metadata.Version)
	}
	wantFiles := []iosconfig.File{{
		Path:    "/flash/ssh/authorized.pub",
		Mode:    0o600,
		Content: []byte("ssh-ed25519 AAAAC3Nza admin@lab"),
	}}
	if diff := cmp.Diff(wantFiles, bundle.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestIOSRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	msg := loadLayers(t, "site.json", "device.json")
	opts := iosconfig.RenderOptions{Clock: fixedClock}

	first, err := newBackend().ToNative(context.Background(), msg, opts)
	if err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}
	second, err := newBackend().ToNative(context.Background(), msg, opts)
	if err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}

	if diff := cmp.Diff(mainConfig(t, first), mainConfig(t, second)); diff != "" {
		t.Fatalf("render not deterministic (-first +second):\n%s", diff)
	}
	if first.Metadata.Custom[iosconfig.GenerationIDKey] == second.Metadata.Custom[iosconfig.GenerationIDKey] {
		t.Error("generation id should differ between renders")
	}
}
