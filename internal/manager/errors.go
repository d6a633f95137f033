package manager

import "fmt"

// ValidationError 业务校验失败：操作被拒绝且未发生任何变更
// 与传输失败（内部降级消化）和记录不存在（返回 nil/false）严格区分
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation 判断错误是否为业务校验失败
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
