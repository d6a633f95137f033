package model

import "time"

// ArticleStatus 文章状态
// 四个字面值是前后端共同依赖的线上契约，不可增减
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"     // 草稿
	StatusPending   ArticleStatus = "pending"   // 待审核
	StatusPublished ArticleStatus = "published" // 已发布
	StatusTrash     ArticleStatus = "trash"     // 回收站（可恢复，非删除）
)

// IsValid 检查状态是否有效
func (s ArticleStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusTrash:
		return true
	}
	return false
}

// String 返回状态字符串
func (s ArticleStatus) String() string {
	return string(s)
}

// Article 文章（专题）实体
// AuthorID 创建后不可变更；TrackData 为记录的行程轨迹
type Article struct {
	ID          string        `json:"id"`
	Title       LocalizedText `json:"title"`
	CoverURL    string        `json:"cover_url,omitempty"`
	Content     LocalizedText `json:"content"`
	RegionID    string        `json:"location_id,omitempty"`
	AuthorID    string        `json:"author_id"`
	Status      ArticleStatus `json:"status"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
	TrackData   []Coordinates `json:"trackData,omitempty"`
	CategoryID  string        `json:"category_id,omitempty"`
	TagIDs      []string      `json:"tag_ids,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ArticlePatch 文章合并更新（nil 字段不修改；AuthorID 不在其列）
type ArticlePatch struct {
	Title       LocalizedText  `json:"title,omitempty"`
	CoverURL    *string        `json:"cover_url,omitempty"`
	Content     LocalizedText  `json:"content,omitempty"`
	RegionID    *string        `json:"location_id,omitempty"`
	Status      *ArticleStatus `json:"status,omitempty"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
	TrackData   []Coordinates  `json:"trackData,omitempty"`
	CategoryID  *string        `json:"category_id,omitempty"`
	TagIDs      []string       `json:"tag_ids,omitempty"`
}

// ArticleVersion 文章版本（审计）记录
// 每次状态流转都会追加一条
type ArticleVersion struct {
	ID                string    `json:"id"`
	ArticleID         string    `json:"article_id"`
	ChangeDescription string    `json:"change_description"`
	AuthorID          string    `json:"author_id"`
	CreatedAt         time.Time `json:"create_time"`
}
