package model

import "time"

// Category 分类（树形，ParentID 非空时挂在父分类下）
type Category struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	ParentID    string        `json:"parent_id,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CategoryPatch 分类合并更新
type CategoryPatch struct {
	Name        LocalizedText `json:"name,omitempty"`
	ParentID    *string       `json:"parent_id,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
}

// Tag 标签（扁平）
// 删除标签不受引用约束：删除时从所有文章的标签列表中移除
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
