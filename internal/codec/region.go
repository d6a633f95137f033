package codec

import (
	"atlas/internal/model"
	"atlas/internal/pkg/geo"
)

// RegionToEntity 地区行 → 实体
// 多语言字段只含主语言；Layer/Type 补前端默认值
func RegionToEntity(row *RegionRow) *model.Region {
	if row == nil {
		return nil
	}
	r := &model.Region{
		ID:          row.RegionID,
		Name:        model.Localized(row.RegionName),
		Coordinates: geo.DecodePoint(row.Location),
		Population:  cloneInt64(row.Population),
		Layer:       model.DefaultRegionLayer,
		Type:        model.DefaultRegionType,
		CreatedAt:   row.CreateTime,
		UpdatedAt:   row.UpdateTime,
	}
	if row.ParentID != nil {
		r.ParentID = *row.ParentID
	}
	if row.Language != nil {
		r.Language = *row.Language
	}
	if row.Description != "" {
		r.Description = model.Localized(row.Description)
	}
	return r
}

// RegionToRow 地区实体 → 行
func RegionToRow(e *model.Region) *RegionRow {
	if e == nil {
		return nil
	}
	row := &RegionRow{
		RegionID:    e.ID,
		RegionName:  e.Name.Primary(),
		Location:    geo.EncodePoint(e.Coordinates),
		Population:  cloneInt64(e.Population),
		Description: e.Description.Primary(),
		CreateTime:  e.CreatedAt,
		UpdateTime:  e.UpdatedAt,
	}
	if e.ParentID != "" {
		row.ParentID = strPtr(e.ParentID)
	}
	if e.Language != "" {
		row.Language = strPtr(e.Language)
	}
	return row
}

func strPtr(s string) *string { return &s }

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
