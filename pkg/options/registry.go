package options

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// Registry 按名称保存 Option，并保留注册顺序以便稳定遍历。
//
// Registry 不做并发保护，调用方需自行串行化访问。
type Registry struct {
	order []string
	opts  map[string]*Option
}

// Group 是 ByGroup 返回的一个分组视图。
type Group struct {
	Name    string
	Options []*Option
}

// NewRegistry 创建空 Registry。
func NewRegistry() *Registry {
	return &Registry{opts: make(map[string]*Option)}
}

// Add registers an option under name. A previous option with the same name is
// replaced in place, keeping its slot in the iteration order.
func (r *Registry) Add(name, value string, settings ...Setting) (*Option, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nxerrors.New(nxerrors.KindValidation, errors.New("option name is empty"))
	}
	opt := New(name, value, settings...)
	if _, exists := r.opts[name]; !exists {
		r.order = append(r.order, name)
	}
	r.opts[name] = opt
	return opt, nil
}

// Get returns the live option registered under name.
func (r *Registry) Get(name string) (*Option, error) {
	opt, ok := r.opts[name]
	if !ok {
		return nil, nxerrors.UnknownOption(name)
	}
	return opt, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.opts[name]
	return ok
}

// Value returns the current value of name.
func (r *Registry) Value(name string) (string, error) {
	opt, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return opt.Value(), nil
}

// SetValue overwrites the current value of name.
func (r *Registry) SetValue(name, value string) error {
	opt, err := r.Get(name)
	if err != nil {
		return err
	}
	opt.SetValue(value)
	return nil
}

// SetDefaultValue overrides the default of an already registered option.
func (r *Registry) SetDefaultValue(name, value string) error {
	opt, err := r.Get(name)
	if err != nil {
		return err
	}
	opt.SetDefaultValue(value)
	return nil
}

// Len 返回已注册的选项数量。
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every option in registration order. The options are shared with
// the registry, mutating them mutates the registry.
func (r *Registry) All() []*Option {
	result := make([]*Option, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.opts[name])
	}
	return result
}

// Map returns a name → option snapshot sharing the live options.
func (r *Registry) Map() map[string]*Option {
	result := make(map[string]*Option, len(r.opts))
	for name, opt := range r.opts {
		result[name] = opt
	}
	return result
}

// ByGroup builds the grouped view on every call. Groups appear in the order
// their first option was registered.
func (r *Registry) ByGroup() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, opt := range r.All() {
		idx, ok := index[opt.Group()]
		if !ok {
			idx = len(groups)
			index[opt.Group()] = idx
			groups = append(groups, Group{Name: opt.Group()})
		}
		groups[idx].Options = append(groups[idx].Options, opt)
	}
	return groups
}

// Validate checks every option whose type tag is known against its current
// value. Setters never call it.
func (r *Registry) Validate() error {
	var errs []error
	for _, opt := range r.All() {
		if err := validateValue(opt); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return nxerrors.New(nxerrors.KindValidation, errors.Join(errs...))
}

func validateValue(opt *Option) error {
	value := strings.TrimSpace(opt.Value())
	if value == "" {
		return nil
	}
	var err error
	switch opt.Type() {
	case TypeBool:
		_, err = strconv.ParseBool(value)
		if err != nil && (value == "yes" || value == "no" || value == "on" || value == "off") {
			err = nil
		}
	case TypeInt:
		_, err = strconv.Atoi(value)
	case TypeIP:
		_, err = netip.ParseAddr(value)
	case TypeCIDR:
		_, err = netip.ParsePrefix(value)
	}
	if err != nil {
		return fmt.Errorf("option %q (%s): invalid value %q", opt.Name(), opt.Type(), value)
	}
	return nil
}

// ToStruct exports the registry for presentation layers as
// {name: {value, default, type, description, group}}.
func (r *Registry) ToStruct() (*structpb.Struct, error) {
	fields := make(map[string]any, len(r.opts))
	for _, opt := range r.All() {
		fields[opt.Name()] = map[string]any{
			"value":       opt.Value(),
			"default":     opt.DefaultValue(),
			"type":        opt.Type(),
			"description": opt.Description(),
			"group":       opt.Group(),
		}
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("export options: %w", err))
	}
	return st, nil
}
