package cfgerrors

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by cfgparser.
type Kind string

const (
	// KindIO indicates a file could not be opened or written.
	KindIO Kind = "io"
	// KindParse indicates the CFG text could not be parsed.
	KindParse Kind = "parse"
	// KindCoerce 表示原始字符串无法转换成请求的标量类型。
	KindCoerce Kind = "coerce"
	// KindRender 表示模型无法序列化回文本。
	KindRender Kind = "render"
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

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
