package manager

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"atlas/internal/codec"
	"atlas/internal/model"
	"atlas/internal/pkg/id"
	"atlas/internal/search"
	"atlas/internal/seed"
)

// RegionManager 地区管理器
type RegionManager struct {
	gw       RegionGateway
	cache    *cache[model.Region]
	matcher  *search.Matcher
	articles *ArticleManager // 删除守卫查关联文章
}

func newRegionManager(gw RegionGateway, src seed.Source, matcher *search.Matcher) *RegionManager {
	m := &RegionManager{
		gw:      gw,
		cache:   newCache[model.Region](),
		matcher: matcher,
	}
	primed := make(map[string]*model.Region)
	for _, r := range src.Regions() {
		primed[r.ID] = r
	}
	m.cache.prime(primed)
	return m
}

// GetAll 列出全部地区
// 远端成功时整体替换缓存；传输失败降级返回缓存（含兜底数据与降级写入）
func (m *RegionManager) GetAll(ctx context.Context) []*model.Region {
	rows, err := m.gw.ListRegions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("region list degraded to cache")
		return sortRegions(m.cache.list())
	}
	fresh := make(map[string]*model.Region, len(rows))
	for i := range rows {
		e := codec.RegionToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortRegions(m.cache.list())
}

// GetByID 按 ID 查询；不存在返回 nil
func (m *RegionManager) GetByID(ctx context.Context, regionID string) *model.Region {
	row, err := m.gw.GetRegion(ctx, regionID)
	if err != nil {
		log.Warn().Err(err).Str("region_id", regionID).Msg("region get degraded to cache")
		cached, _ := m.cache.get(regionID)
		return cached
	}
	if row == nil {
		return nil
	}
	e := codec.RegionToEntity(row)
	m.cache.put(e.ID, e)
	return e
}

// Search 主语言名称/描述/语言字段的关键词匹配
func (m *RegionManager) Search(ctx context.Context, keyword string) []*model.Region {
	var out []*model.Region
	for _, r := range m.GetAll(ctx) {
		if m.matcher.Match(keyword, r.Name.Primary(), r.Description.Primary(), r.Language) {
			out = append(out, r)
		}
	}
	return out
}

// Children 列出直接子地区
func (m *RegionManager) Children(ctx context.Context, regionID string) []*model.Region {
	var out []*model.Region
	for _, r := range m.GetAll(ctx) {
		if r.ParentID == regionID {
			out = append(out, r)
		}
	}
	return out
}

// Create 新建地区
// durable=false 表示远端不可达，只写入了内存缓存
func (m *RegionManager) Create(ctx context.Context, input *model.Region) (region *model.Region, durable bool, err error) {
	if input == nil || input.Name.Primary() == "" {
		return nil, false, validationf("地区名称不能为空")
	}
	if input.Population != nil && *input.Population < 0 {
		return nil, false, validationf("人口数不能为负")
	}

	now := time.Now()
	e := cloneRegion(input)
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Layer == "" {
		e.Layer = model.DefaultRegionLayer
	}
	if e.Type == "" {
		e.Type = model.DefaultRegionType
	}

	created, gerr := m.gw.CreateRegion(ctx, codec.RegionToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("region create degraded to cache-only write")
		e.ID = id.Sequential(id.RegionPrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		return e, false, nil
	}
	e = codec.RegionToEntity(created)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Update 合并更新：只修改 patch 中出现的字段
func (m *RegionManager) Update(ctx context.Context, regionID string, patch *model.RegionPatch) (region *model.Region, durable bool, err error) {
	current := m.GetByID(ctx, regionID)
	if current == nil {
		return nil, false, nil
	}
	if patch == nil {
		return current, true, nil
	}
	if patch.ParentID != nil && m.wouldCycle(ctx, regionID, *patch.ParentID) {
		return nil, false, validationf("父地区设置会形成环")
	}
	if patch.Population != nil && *patch.Population < 0 {
		return nil, false, validationf("人口数不能为负")
	}

	next := applyRegionPatch(current, patch)

	updated, gerr := m.gw.UpdateRegion(ctx, regionID, codec.RegionToRow(next))
	if gerr != nil {
		log.Warn().Err(gerr).Str("region_id", regionID).Msg("region update degraded to cache-only write")
		m.cache.put(regionID, next)
		return next, false, nil
	}
	e := codec.RegionToEntity(updated)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Delete 删除地区
// 有子地区或有文章引用时拒绝；removed 表示确有删除
func (m *RegionManager) Delete(ctx context.Context, regionID string) (removed bool, durable bool, err error) {
	if len(m.Children(ctx, regionID)) > 0 {
		return false, false, validationf("地区下存在子地区，不能删除")
	}
	if m.articles != nil && m.articles.anyInRegion(ctx, regionID) {
		return false, false, validationf("地区下存在文章，不能删除")
	}

	ok, gerr := m.gw.DeleteRegion(ctx, regionID)
	if gerr != nil {
		log.Warn().Err(gerr).Str("region_id", regionID).Msg("region delete degraded to cache-only write")
		return m.cache.delete(regionID), false, nil
	}
	if ok {
		m.cache.delete(regionID)
	}
	return ok, true, nil
}

// LastUpdated 最近一次远端同步时间；从未同步过时 ok=false
func (m *RegionManager) LastUpdated() (t time.Time, ok bool) {
	return m.cache.lastSynced()
}

// wouldCycle 判断把 parentID 设为父节点是否会让 regionID 成为自己的祖先
// 上游不做环检测，这里沿父链最多走缓存内地区数步
func (m *RegionManager) wouldCycle(ctx context.Context, regionID, parentID string) bool {
	if parentID == "" {
		return false
	}
	if parentID == regionID {
		return true
	}
	all := make(map[string]*model.Region)
	for _, r := range m.GetAll(ctx) {
		all[r.ID] = r
	}
	cur := parentID
	for range all {
		node, ok := all[cur]
		if !ok || node.ParentID == "" {
			return false
		}
		if node.ParentID == regionID {
			return true
		}
		cur = node.ParentID
	}
	return false
}

func applyRegionPatch(current *model.Region, patch *model.RegionPatch) *model.Region {
	next := cloneRegion(current)
	if patch.Name != nil {
		next.Name = patch.Name.Clone()
	}
	if patch.ParentID != nil {
		next.ParentID = *patch.ParentID
	}
	if patch.Coordinates != nil {
		next.Coordinates = *patch.Coordinates
	}
	if patch.Population != nil {
		pop := *patch.Population
		next.Population = &pop
	}
	if patch.Language != nil {
		next.Language = *patch.Language
	}
	if patch.Description != nil {
		next.Description = patch.Description.Clone()
	}
	next.UpdatedAt = time.Now()
	return next
}

func cloneRegion(r *model.Region) *model.Region {
	c := *r
	c.Name = r.Name.Clone()
	c.Description = r.Description.Clone()
	if r.Population != nil {
		pop := *r.Population
		c.Population = &pop
	}
	return &c
}

func sortRegions(items []*model.Region) []*model.Region {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
