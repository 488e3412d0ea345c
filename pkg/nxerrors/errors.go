package nxerrors

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by iosconfig.
type Kind string

const (
	// KindValidation indicates caller supplied data failed validation.
	KindValidation Kind = "validation"
	// KindLookup 表示按名称访问了未注册的选项。
	KindLookup Kind = "lookup"
	// KindRender indicates 配置文本渲染失败。
	KindRender Kind = "render"
	// KindUnsupported 表示暂不支持的功能（例如反向解析）。
	KindUnsupported Kind = "unsupported"
	// KindInternal 表示未知或内部错误。
	KindInternal Kind = "internal"
)

// Error 包装底层错误并附加 Kind，方便调用方根据类型处理。
type Error struct {
	Kind Kind
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap 允许 errors.Is/As 访问底层错误。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建指定 Kind 的错误。
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// UnknownOption 构造 KindLookup 错误，可通过 errors.Is(err, ErrUnknownOption) 识别。
func UnknownOption(name string) error {
	return New(KindLookup, fmt.Errorf("%w %q", ErrUnknownOption, name))
}

// IsKind reports whether err carries the given Kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

var (
	// ErrUnknownOption 统一指示选项名未注册。
	ErrUnknownOption = errors.New("unknown option")
	// ErrNotImplemented 统一指示功能尚未实现。
	ErrNotImplemented = errors.New("iosconfig: not implemented")
)
