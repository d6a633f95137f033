package model

import "time"

// User 用户实体
// Username/Email 唯一；Phone 可选但非空时唯一（空串入库前归一化为缺失，
// 避免唯一索引冲突）
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch 用户合并更新
type UserPatch struct {
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PasswordHash *string `json:"-"`
	Role         *string `json:"role,omitempty"`
}

// 内置角色名（与权限表中的键严格区分大小写匹配）
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleWriter = "writer"
	RoleViewer = "viewer"
)
