package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	openwrtv1 "github.com/honeybbq/netjson/gen/go/netjson/openwrt/v1"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/honeybbq/iosconfig/pkg/iosconfig"
)

// fixedClock 让 banner 输出可重复。
func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)
}

func testdataPath(parts ...string) string {
	return filepath.Join(append([]string{"..", "testdata"}, parts...)...)
}

func readTestdata(t *testing.T, parts ...string) []byte {
	t.Helper()
	data, err := os.ReadFile(testdataPath(parts...))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	return data
}

// loadLayers 按顺序合并多个 NetJSON 文件并解析。
func loadLayers(t *testing.T, names ...string) *openwrtv1.OpenWrtConfig {
	t.Helper()
	layers := make([][]byte, 0, len(names))
	for _, name := range names {
		layers = append(layers, readTestdata(t, "ios", name))
	}
	merged, err := iosconfig.MergeJSON(layers, iosconfig.DefaultIdentifiers)
	if err != nil {
		t.Fatalf("MergeJSON failed: %v", err)
	}
	var msg openwrtv1.OpenWrtConfig
	if err := protojson.Unmarshal(merged, &msg); err != nil {
		t.Fatalf("unmarshal netjson: %v", err)
	}
	return &msg
}

// mainConfig returns the text of the first package.
func mainConfig(t *testing.T, bundle *iosconfig.Bundle) string {
	t.Helper()
	pkg, ok := bundle.Main()
	if !ok {
		t.Fatal("bundle has no packages")
	}
	return string(pkg.Content)
}

// normalizeConfig 统一换行符并去除首尾空白。
func normalizeConfig(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text)
}

// assertConfig 按行比较配置并输出 go-cmp 差异。
func assertConfig(t *testing.T, got, want string) {
	t.Helper()
	gotLines := strings.Split(normalizeConfig(got), "\n")
	wantLines := strings.Split(normalizeConfig(want), "\n")
	if diff := cmp.Diff(wantLines, gotLines); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
