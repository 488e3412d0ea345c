// Package profile loads option override profiles used to drive templated
// generation. A profile names the banner identity, a generation tag and a
// set of option values; the format is picked from the file extension.
//
// TOML:
//
//	identity = "lab-builder"
//	[options]
//	hostname = "core-sw1"
//	ip-routing = true
//
// YAML:
//
//	identity: lab-builder
//	options:
//	  hostname: core-sw1
//
// HCL:
//
//	identity = "lab-builder"
//	options = {
//	  hostname = "core-sw1"
//	}
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v2"

	"github.com/honeybbq/iosconfig/pkg/iosconfig"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// Profile is a decoded override profile.
type Profile struct {
	Identity string
	Tag      string
	Options  map[string]string
}

// Load reads and decodes the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode decodes data using the format implied by name's extension.
func Decode(name string, data []byte) (*Profile, error) {
	var (
		p   *Profile
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		p, err = decodeTOML(data)
	case ".yaml", ".yml":
		p, err = decodeYAML(data)
	case ".hcl":
		p, err = decodeHCL(name, data)
	default:
		return nil, nxerrors.New(nxerrors.KindUnsupported, fmt.Errorf("unknown profile format %q", filepath.Ext(name)))
	}
	if err != nil {
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("decode profile %s: %w", name, err))
	}
	return p, nil
}

// Apply fills opts from the profile. Values already present in opts win,
// so command line settings override the profile.
func (p *Profile) Apply(opts *iosconfig.RenderOptions) {
	if p == nil || opts == nil {
		return
	}
	if opts.Identity == "" {
		opts.Identity = p.Identity
	}
	if opts.GenerationTag == "" {
		opts.GenerationTag = p.Tag
	}
	if len(p.Options) == 0 {
		return
	}
	if opts.Overrides == nil {
		opts.Overrides = make(map[string]string, len(p.Options))
	}
	for name, value := range p.Options {
		if _, set := opts.Overrides[name]; !set {
			opts.Overrides[name] = value
		}
	}
}

type rawProfile struct {
	Identity string         `toml:"identity" yaml:"identity"`
	Tag      string         `toml:"tag" yaml:"tag"`
	Options  map[string]any `toml:"options" yaml:"options"`
}

func (r rawProfile) build() (*Profile, error) {
	p := &Profile{Identity: r.Identity, Tag: r.Tag, Options: make(map[string]string, len(r.Options))}
	for name, raw := range r.Options {
		value, err := stringify(raw)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		p.Options[name] = value
	}
	return p, nil
}

func decodeTOML(data []byte) (*Profile, error) {
	var raw rawProfile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return raw.build()
}

func decodeYAML(data []byte) (*Profile, error) {
	var raw rawProfile
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}
	return raw.build()
}

type hclProfile struct {
	Identity string         `hcl:"identity,optional"`
	Tag      string         `hcl:"tag,optional"`
	Options  hcl.Expression `hcl:"options,optional"`
}

func decodeHCL(name string, data []byte) (*Profile, error) {
	var raw hclProfile
	if err := hclsimple.Decode(name, data, nil, &raw); err != nil {
		return nil, err
	}
	p := &Profile{Identity: raw.Identity, Tag: raw.Tag, Options: make(map[string]string)}
	if raw.Options == nil {
		return p, nil
	}
	val, diags := raw.Options.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return p, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, errors.New("options must be an object")
	}
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		if v.IsNull() || !v.IsWhollyKnown() {
			return nil, fmt.Errorf("option %q has no value", k.AsString())
		}
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k.AsString(), err)
		}
		p.Options[k.AsString()] = str.AsString()
	}
	return p, nil
}

func stringify(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", raw)
	}
}
