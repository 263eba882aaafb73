package cadmtl

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedImage 无法解码的位图格式
	ErrUnsupportedImage = errors.New("unsupported image format")

	// ErrInvalidOption 未知的配置取值
	ErrInvalidOption = errors.New("invalid option")
)

// LookupError 宿主文档查询材质失败
type LookupError struct {
	ID  ElementID
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup material %s: %v", e.ID, e.Err)
}

func (e *LookupError) Cause() error {
	return e.Err
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
