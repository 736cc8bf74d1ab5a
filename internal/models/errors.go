package models

import (
	"errors"
	"fmt"
)

// ErrZeroDepthNeedsConfirm 巡检深度出现 0 值但未经操作员确认。
// 0 有歧义（真磨穿 vs 录入错误），必须二次确认后才允许入库。
var ErrZeroDepthNeedsConfirm = errors.New("zero depth reading requires operator confirmation")

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ValidationError 输入校验失败。在任何持久化动作之前返回，不自动重试。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError 构造校验错误
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError 判断错误链中是否包含校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError 非法生命周期流转。拒绝时不产生任何状态变化。
type InvalidTransitionError struct {
	From Stage
	To   Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition: %s -> %s", e.From, e.To)
}

// IsInvalidTransition 判断错误链中是否包含非法流转错误
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
