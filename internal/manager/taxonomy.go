package manager

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"atlas/internal/codec"
	"atlas/internal/model"
	"atlas/internal/pkg/id"
	"atlas/internal/seed"
)

// CategoryManager 分类管理器
type CategoryManager struct {
	gw       TaxonomyGateway
	cache    *cache[model.Category]
	articles *ArticleManager
}

func newCategoryManager(gw TaxonomyGateway, src seed.Source) *CategoryManager {
	m := &CategoryManager{gw: gw, cache: newCache[model.Category]()}
	primed := make(map[string]*model.Category)
	for _, c := range src.Categories() {
		primed[c.ID] = c
	}
	m.cache.prime(primed)
	return m
}

// GetAll 列出全部分类
func (m *CategoryManager) GetAll(ctx context.Context) []*model.Category {
	rows, err := m.gw.ListCategories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("category list degraded to cache")
		return sortCategories(m.cache.list())
	}
	fresh := make(map[string]*model.Category, len(rows))
	for i := range rows {
		e := codec.CategoryToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortCategories(m.cache.list())
}

// GetByID 按 ID 查询；不存在返回 nil
func (m *CategoryManager) GetByID(ctx context.Context, categoryID string) *model.Category {
	row, err := m.gw.GetCategory(ctx, categoryID)
	if err != nil {
		log.Warn().Err(err).Str("category_id", categoryID).Msg("category get degraded to cache")
		cached, _ := m.cache.get(categoryID)
		return cached
	}
	if row == nil {
		return nil
	}
	e := codec.CategoryToEntity(row)
	m.cache.put(e.ID, e)
	return e
}

// Create 新建分类
func (m *CategoryManager) Create(ctx context.Context, input *model.Category) (category *model.Category, durable bool, err error) {
	if input == nil || input.Name.Primary() == "" {
		return nil, false, validationf("分类名称不能为空")
	}

	now := time.Now()
	e := &model.Category{
		Name:        input.Name.Clone(),
		ParentID:    input.ParentID,
		Description: input.Description.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, gerr := m.gw.CreateCategory(ctx, codec.CategoryToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("category create degraded to cache-only write")
		e.ID = id.Sequential(id.CategoryPrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		return e, false, nil
	}
	e = codec.CategoryToEntity(created)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Update 合并更新
func (m *CategoryManager) Update(ctx context.Context, categoryID string, patch *model.CategoryPatch) (category *model.Category, durable bool, err error) {
	current := m.GetByID(ctx, categoryID)
	if current == nil {
		return nil, false, nil
	}
	if patch == nil {
		return current, true, nil
	}

	next := *current
	next.Name = current.Name.Clone()
	next.Description = current.Description.Clone()
	if patch.Name != nil {
		next.Name = patch.Name.Clone()
	}
	if patch.ParentID != nil {
		next.ParentID = *patch.ParentID
	}
	if patch.Description != nil {
		next.Description = patch.Description.Clone()
	}
	next.UpdatedAt = time.Now()

	updated, gerr := m.gw.UpdateCategory(ctx, categoryID, codec.CategoryToRow(&next))
	if gerr != nil {
		log.Warn().Err(gerr).Str("category_id", categoryID).Msg("category update degraded to cache-only write")
		m.cache.put(categoryID, &next)
		return &next, false, nil
	}
	e := codec.CategoryToEntity(updated)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Delete 删除分类
// 有子分类或有文章挂载时拒绝
func (m *CategoryManager) Delete(ctx context.Context, categoryID string) (removed bool, durable bool, err error) {
	for _, c := range m.GetAll(ctx) {
		if c.ParentID == categoryID {
			return false, false, validationf("分类下存在子分类，不能删除")
		}
	}
	if m.articles != nil && m.articles.anyInCategory(ctx, categoryID) {
		return false, false, validationf("分类下存在文章，不能删除")
	}

	ok, gerr := m.gw.DeleteCategory(ctx, categoryID)
	if gerr != nil {
		log.Warn().Err(gerr).Str("category_id", categoryID).Msg("category delete degraded to cache-only write")
		return m.cache.delete(categoryID), false, nil
	}
	if ok {
		m.cache.delete(categoryID)
	}
	return ok, true, nil
}

// TagManager 标签管理器
type TagManager struct {
	gw       TaxonomyGateway
	cache    *cache[model.Tag]
	articles *ArticleManager
}

func newTagManager(gw TaxonomyGateway, src seed.Source) *TagManager {
	m := &TagManager{gw: gw, cache: newCache[model.Tag]()}
	primed := make(map[string]*model.Tag)
	for _, t := range src.Tags() {
		primed[t.ID] = t
	}
	m.cache.prime(primed)
	return m
}

// GetAll 列出全部标签
func (m *TagManager) GetAll(ctx context.Context) []*model.Tag {
	rows, err := m.gw.ListTags(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tag list degraded to cache")
		return sortTags(m.cache.list())
	}
	fresh := make(map[string]*model.Tag, len(rows))
	for i := range rows {
		e := codec.TagToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortTags(m.cache.list())
}

// Create 新建标签
func (m *TagManager) Create(ctx context.Context, name string) (tag *model.Tag, durable bool, err error) {
	if name == "" {
		return nil, false, validationf("标签名不能为空")
	}
	for _, t := range m.GetAll(ctx) {
		if t.Name == name {
			return nil, false, validationf("标签已存在")
		}
	}

	e := &model.Tag{Name: name, CreatedAt: time.Now()}
	created, gerr := m.gw.CreateTag(ctx, codec.TagToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("tag create degraded to cache-only write")
		e.ID = id.Sequential(id.TagPrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		return e, false, nil
	}
	e = codec.TagToEntity(created)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Delete 删除标签
// 标签不受引用约束：删除时从所有文章的标签列表中摘除
func (m *TagManager) Delete(ctx context.Context, tagID string) (removed bool, durable bool, err error) {
	ok, gerr := m.gw.DeleteTag(ctx, tagID)
	durable = true
	if gerr != nil {
		log.Warn().Err(gerr).Str("tag_id", tagID).Msg("tag delete degraded to cache-only write")
		ok = m.cache.delete(tagID)
		durable = false
	} else if ok {
		m.cache.delete(tagID)
	}
	if ok && m.articles != nil {
		m.articles.detachTag(ctx, tagID)
	}
	return ok, durable, nil
}

func sortCategories(items []*model.Category) []*model.Category {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func sortTags(items []*model.Tag) []*model.Tag {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
