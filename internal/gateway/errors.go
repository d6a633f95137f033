package gateway

import (
	"errors"
	"fmt"
)

// TransportError 远端存储不可达（网络错误或非 2xx 响应）
// 与"调用成功但记录不存在"（返回 nil/false）严格区分
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gateway: %s: status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport 判断错误是否为传输失败
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
