package model

import "time"

// Region 地区实体
// ParentID 非空时构成地区树；删除受子地区与关联文章约束
type Region struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	ParentID    string        `json:"parent_id,omitempty"`
	Coordinates Coordinates   `json:"coordinates"`
	Population  *int64        `json:"population,omitempty"`
	Language    string        `json:"language,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
	// Layer/Type 是前端展示属性，关系库不存储，解码时补默认值
	Layer string `json:"layer"`
	Type  string `json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 前端展示属性默认值
const (
	DefaultRegionLayer = "city"
	DefaultRegionType  = "region"
)

// RegionPatch 地区合并更新（nil 字段不修改）
type RegionPatch struct {
	Name        LocalizedText `json:"name,omitempty"`
	ParentID    *string       `json:"parent_id,omitempty"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
	Population  *int64        `json:"population,omitempty"`
	Language    *string       `json:"language,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
}
