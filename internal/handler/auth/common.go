package auth

import (
	"time"

	"atlas/internal/model"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID        string `json:"id"`              // 用户ID
	Username  string `json:"username"`        // 用户名
	Email     string `json:"email"`           // 邮箱
	Phone     string `json:"phone,omitempty"` // 手机号
	Role      string `json:"role"`            // 角色：admin/editor/writer/viewer
	CreatedAt string `json:"created_at,omitempty"`
}

// toUserInfo 将User实体转换为UserInfo（所有API共用）
func toUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
