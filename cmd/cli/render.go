package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	openwrtv1 "github.com/honeybbq/netjson/gen/go/netjson/openwrt/v1"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v2"
	"google.golang.org/protobuf/encoding/protojson"

	iosbackend "github.com/honeybbq/iosconfig/backend/ios"
	domain "github.com/honeybbq/iosconfig/domain/ios"
	"github.com/honeybbq/iosconfig/pkg/ctxlog"
	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/profile"
	iosrenderer "github.com/honeybbq/iosconfig/pkg/renderer/ios"
)

var errConfigDiffers = errors.New("configuration differs")

func runRender(c *cli.Context) error {
	logger := ctxlog.New(c.App.ErrWriter, c.String("log-level"))
	ctx := ctxlog.WithLogger(c.Context, logger)

	msg, err := loadNetJSON(c.StringSlice("input"), c.App.Reader)
	if err != nil {
		return err
	}
	opts, err := renderOptions(c)
	if err != nil {
		return err
	}

	backend := iosbackend.New(iosrenderer.NewPlainTextRenderer())
	bundle, err := backend.ToNative(ctx, msg, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	startup, ok := bundle.Main()
	if !ok {
		return errors.New("render: backend produced no configuration")
	}
	logger.Info("rendered configuration",
		"bytes", len(startup.Content),
		"files", len(bundle.Files),
		"generation_id", bundle.Metadata.Custom[iosconfig.GenerationIDKey],
	)

	if existing := c.String("diff"); existing != "" {
		return writeDiff(c.App.Writer, existing, startup.Content)
	}

	if err := writeOutput(c.App.Writer, c.String("output"), startup.Content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(bundle.Files) == 0 {
		return nil
	}
	dir := c.String("files-dir")
	if dir == "" {
		logger.Warn("additional files produced; use --files-dir to write them", "files", len(bundle.Files))
		return nil
	}
	return writeBundleFiles(dir, bundle.Files)
}

func runOptions(c *cli.Context) error {
	msg := &openwrtv1.OpenWrtConfig{}
	if inputs := c.StringSlice("input"); len(inputs) > 0 {
		var err error
		if msg, err = loadNetJSON(inputs, c.App.Reader); err != nil {
			return err
		}
	}
	opts, err := renderOptions(c)
	if err != nil {
		return err
	}

	cfg, err := domain.FromProto(msg)
	if err != nil {
		return err
	}
	doc, err := cfg.ToAST(opts)
	if err != nil {
		return err
	}
	reg := doc.Options()

	if c.Bool("json") {
		st, err := reg.ToStruct()
		if err != nil {
			return err
		}
		payload, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return writeOutput(c.App.Writer, "", payload)
	}

	w := c.App.Writer
	for i, group := range reg.ByGroup() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, opt := range group.Options {
			line := fmt.Sprintf("  %s = %q", opt.Name(), opt.Value())
			if !opt.IsDefault() {
				line += fmt.Sprintf(" (default %q)", opt.DefaultValue())
			}
			if opt.Description() != "" {
				line += "  # " + opt.Description()
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// renderOptions 合并命令行与 profile，命令行优先。
func renderOptions(c *cli.Context) (iosconfig.RenderOptions, error) {
	overrides, err := parseSets(c.StringSlice("set"))
	if err != nil {
		return iosconfig.RenderOptions{}, err
	}
	opts := iosconfig.RenderOptions{
		Overrides:     overrides,
		Identity:      c.String("identity"),
		GenerationTag: c.String("tag"),
		Trailer:       c.String("trailer"),
		Strict:        c.Bool("strict"),
		Timeout:       c.Duration("timeout"),
	}
	if path := c.String("profile"); path != "" {
		p, err := profile.Load(path)
		if err != nil {
			return iosconfig.RenderOptions{}, err
		}
		p.Apply(&opts)
	}
	return opts, nil
}

func parseSets(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(values))
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q (want name=value)", raw)
		}
		overrides[name] = value
	}
	return overrides, nil
}

// loadNetJSON 读取一个或多个 NetJSON 文件，多个文件按顺序叠加。
func loadNetJSON(paths []string, stdin io.Reader) (*openwrtv1.OpenWrtConfig, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	layers := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := readInput(path, stdin)
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", path, err)
		}
		layers = append(layers, data)
	}

	payload := layers[0]
	if len(layers) > 1 {
		merged, err := iosconfig.MergeJSON(layers, iosconfig.DefaultIdentifiers)
		if err != nil {
			return nil, fmt.Errorf("merge inputs: %w", err)
		}
		payload = merged
	}

	msg := &openwrtv1.OpenWrtConfig{}
	if err := protojson.Unmarshal(payload, msg); err != nil {
		return nil, fmt.Errorf("decode netjson: %w", err)
	}
	return msg, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeDiff 比较生成结果与现有配置，忽略 banner 行。
func writeDiff(w io.Writer, existingPath string, generated []byte) error {
	existing, err := os.ReadFile(existingPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", existingPath, err)
	}
	a := stripBanner(string(existing))
	b := stripBanner(string(generated))
	if a == b {
		fmt.Fprintln(w, "No changes detected.")
		return nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: existingPath,
		ToFile:   "generated",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	fmt.Fprint(w, text)
	return errConfigDiffers
}

func stripBanner(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "!! Generated by ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return err
		}
		if !bytes.HasSuffix(data, []byte("\n")) {
			_, err := fmt.Fprintln(stdout)
			return err
		}
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}
