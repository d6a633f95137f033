// Package codec 在关系库行与应用实体之间做双向转换。
// 所有转换函数都是纯函数：nil 入参返回 nil，不产生副作用。
// 关系库无法承载的字段（主语言之外的多语言文本、前端展示属性）在解码时
// 以文档化的默认值补齐，而不是静默丢弃。
package codec

import "time"

// RegionRow 地区表行
type RegionRow struct {
	RegionID    string    `json:"region_id"`
	RegionName  string    `json:"region_name"`
	ParentID    *string   `json:"parent_id"`
	Location    string    `json:"location"` // WKT POINT
	Population  *int64    `json:"population"`
	Language    *string   `json:"language"`
	Description string    `json:"description"`
	CreateTime  time.Time `json:"create_time"`
	UpdateTime  time.Time `json:"update_time"`
}

// TopicRow 文章（专题）表行
// Coordinates/TrackData/Tags 以 JSON 文本列存储
type TopicRow struct {
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	CoverURL    string    `json:"cover_url"`
	Content     string    `json:"content"`
	RegionID    *string   `json:"region_id"`
	AuthorID    string    `json:"author_id"`
	Status      string    `json:"status"`
	Coordinates *string   `json:"coordinates"`
	TrackData   *string   `json:"track_data"`
	CategoryID  *string   `json:"category_id"`
	Tags        *string   `json:"tags"`
	CreateTime  time.Time `json:"create_time"`
	UpdateTime  time.Time `json:"update_time"`
}

// TopicVersionRow 文章版本表行
type TopicVersionRow struct {
	VersionID         string    `json:"version_id"`
	TopicID           string    `json:"topic_id"`
	ChangeDescription string    `json:"change_description"`
	AuthorID          string    `json:"author_id"`
	CreateTime        time.Time `json:"create_time"`
}

// UserRow 用户表行
// Phone 为空串时归一化为 NULL，避免唯一索引冲突
type UserRow struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreateTime   time.Time `json:"create_time"`
	UpdateTime   time.Time `json:"update_time"`
}

// RoleRow 角色表行
type RoleRow struct {
	RoleID      string    `json:"role_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	CreateTime  time.Time `json:"create_time"`
	UpdateTime  time.Time `json:"update_time"`
}

// PermissionRow 权限表行
type PermissionRow struct {
	PermissionID string `json:"permission_id"`
	Module       string `json:"module"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

// CategoryRow 分类表行
type CategoryRow struct {
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	ParentID    *string   `json:"parent_id"`
	Description string    `json:"description"`
	CreateTime  time.Time `json:"create_time"`
	UpdateTime  time.Time `json:"update_time"`
}

// TagRow 标签表行
type TagRow struct {
	TagID      string    `json:"tag_id"`
	Name       string    `json:"name"`
	CreateTime time.Time `json:"create_time"`
}
