package codec

import "atlas/internal/model"

// CategoryToEntity 分类行 → 实体
func CategoryToEntity(row *CategoryRow) *model.Category {
	if row == nil {
		return nil
	}
	c := &model.Category{
		ID:        row.CategoryID,
		Name:      model.Localized(row.Name),
		CreatedAt: row.CreateTime,
		UpdatedAt: row.UpdateTime,
	}
	if row.ParentID != nil {
		c.ParentID = *row.ParentID
	}
	if row.Description != "" {
		c.Description = model.Localized(row.Description)
	}
	return c
}

// CategoryToRow 分类实体 → 行
func CategoryToRow(e *model.Category) *CategoryRow {
	if e == nil {
		return nil
	}
	row := &CategoryRow{
		CategoryID:  e.ID,
		Name:        e.Name.Primary(),
		Description: e.Description.Primary(),
		CreateTime:  e.CreatedAt,
		UpdateTime:  e.UpdatedAt,
	}
	if e.ParentID != "" {
		row.ParentID = strPtr(e.ParentID)
	}
	return row
}

// TagToEntity 标签行 → 实体
func TagToEntity(row *TagRow) *model.Tag {
	if row == nil {
		return nil
	}
	return &model.Tag{
		ID:        row.TagID,
		Name:      row.Name,
		CreatedAt: row.CreateTime,
	}
}

// TagToRow 标签实体 → 行
func TagToRow(e *model.Tag) *TagRow {
	if e == nil {
		return nil
	}
	return &TagRow{
		TagID:      e.ID,
		Name:       e.Name,
		CreateTime: e.CreatedAt,
	}
}
