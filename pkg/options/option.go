package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// DefaultGroup 是未指定分组时使用的分组名。
const DefaultGroup = "Default group"

// 常用的类型标签，仅供参考，Set 时不做校验。
const (
	TypeText = "text"
	TypeBool = "bool"
	TypeInt  = "int"
	TypeIP   = "ip"
	TypeCIDR = "cidr"
)

// Option 是单个可配置项：名称不可变，当前值与默认值可分别修改。
type Option struct {
	name         string
	value        string
	defaultValue string
	typ          string
	description  string
	group        string
}

// Setting 在注册时调整 Option 的可选属性。
type Setting func(*Option)

// WithType 设置类型标签。
func WithType(typ string) Setting {
	return func(o *Option) {
		if typ != "" {
			o.typ = typ
		}
	}
}

// WithDescription 设置说明文字。
func WithDescription(desc string) Setting {
	return func(o *Option) {
		o.description = desc
	}
}

// WithGroup 设置分组。
func WithGroup(group string) Setting {
	return func(o *Option) {
		if group != "" {
			o.group = group
		}
	}
}

// New 创建 Option，默认值与当前值相同。
func New(name, value string, settings ...Setting) *Option {
	opt := &Option{
		name:         name,
		value:        value,
		defaultValue: value,
		typ:          TypeText,
		group:        DefaultGroup,
	}
	for _, apply := range settings {
		apply(opt)
	}
	return opt
}

func (o *Option) Name() string         { return o.name }
func (o *Option) Value() string        { return o.value }
func (o *Option) DefaultValue() string { return o.defaultValue }
func (o *Option) Type() string         { return o.typ }
func (o *Option) Description() string  { return o.description }
func (o *Option) Group() string        { return o.group }

// SetValue overwrites the current value. The type tag is not consulted.
func (o *Option) SetValue(v string) {
	o.value = v
}

// SetDefaultValue only changes what Reset restores; the current value is untouched.
func (o *Option) SetDefaultValue(v string) {
	o.defaultValue = v
}

// Reset restores the current value from the default.
func (o *Option) Reset() {
	o.value = o.defaultValue
}

// IsDefault reports whether the current value equals the default.
func (o *Option) IsDefault() bool {
	return o.value == o.defaultValue
}

// Bool interprets the current value as a boolean ("1", "true", "yes", "on").
func (o *Option) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(o.value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Int parses the current value as a base-10 integer.
func (o *Option) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(o.value))
	if err != nil {
		return 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("option %q: %w", o.name, err))
	}
	return n, nil
}
