package common

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/honeybbq/iosconfig/pkg/ast/ios"
	"github.com/honeybbq/iosconfig/pkg/nxerrors"
	"github.com/honeybbq/iosconfig/pkg/options"
)

// ProtoMessageToMap converts proto message into map via protojson.
func ProtoMessageToMap(msg proto.Message) map[string]any {
	if msg == nil || !msg.ProtoReflect().IsValid() {
		return nil
	}
	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		EmitUnpopulated: false,
	}
	data, err := marshaler.Marshal(msg)
	if err != nil {
		return nil
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}

// StringField returns values[key] as a trimmed string, formatting numbers
// and booleans.
func StringField(values map[string]any, key string) string {
	switch v := values[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// ApplyModelDefault makes value the option's default and resets the current
// value to it. Empty values are ignored.
func ApplyModelDefault(reg *options.Registry, name, value string) error {
	if value == "" {
		return nil
	}
	opt, err := reg.Get(name)
	if err != nil {
		return err
	}
	opt.SetDefaultValue(value)
	opt.Reset()
	return nil
}

// OptionBool reads a registered option as a boolean.
func OptionBool(reg *options.Registry, name string) (bool, error) {
	opt, err := reg.Get(name)
	if err != nil {
		return false, err
	}
	return opt.Bool(), nil
}

// LineIf appends line to block when cond holds.
func LineIf(block *ios.Block, cond bool, line string) {
	if block == nil || !cond {
		return
	}
	block.Line(line)
}

// Toggle appends "line" or "no line".
func Toggle(block *ios.Block, enabled bool, line string) {
	if block == nil {
		return
	}
	if enabled {
		block.Line(line)
		return
	}
	block.Line("no " + line)
}

// JoinNonEmpty joins the non-empty values with sep.
func JoinNonEmpty(values []string, sep string) string {
	filtered := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			filtered = append(filtered, v)
		}
	}
	return strings.Join(filtered, sep)
}

// ParseFileMode parses an octal file mode, defaulting to 0644.
func ParseFileMode(value string) (fs.FileMode, error) {
	if value == "" {
		return 0o644, nil
	}
	parsed, err := strconv.ParseUint(value, 8, 32)
	if err != nil {
		return 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid file mode %q: %w", value, err))
	}
	return fs.FileMode(parsed), nil
}
