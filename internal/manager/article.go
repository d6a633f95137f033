package manager

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"atlas/internal/codec"
	"atlas/internal/model"
	"atlas/internal/pkg/id"
	"atlas/internal/search"
	"atlas/internal/seed"
)

// ArticleManager 文章管理器，兼管状态生命周期与版本审计记录
type ArticleManager struct {
	gw       ArticleGateway
	cache    *cache[model.Article]
	versions *cache[[]*model.ArticleVersion] // article_id → 版本列表
	matcher  *search.Matcher
}

// ListOptions 分页查询参数，过滤条件之间取 AND
type ListOptions struct {
	Page     int
	PageSize int
	Status   model.ArticleStatus
	AuthorID string
	RegionID string
	Keyword  string
}

// Pagination 分页信息
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ArticlePage 一页文章
type ArticlePage struct {
	Items      []*model.Article `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

const defaultPageSize = 10

func newArticleManager(gw ArticleGateway, src seed.Source, matcher *search.Matcher) *ArticleManager {
	m := &ArticleManager{
		gw:       gw,
		cache:    newCache[model.Article](),
		versions: newCache[[]*model.ArticleVersion](),
		matcher:  matcher,
	}
	primed := make(map[string]*model.Article)
	for _, a := range src.Articles() {
		primed[a.ID] = a
	}
	m.cache.prime(primed)

	grouped := make(map[string]*[]*model.ArticleVersion)
	for _, v := range src.Versions() {
		if grouped[v.ArticleID] == nil {
			grouped[v.ArticleID] = &[]*model.ArticleVersion{}
		}
		*grouped[v.ArticleID] = append(*grouped[v.ArticleID], v)
	}
	primedVersions := make(map[string]*[]*model.ArticleVersion, len(grouped))
	for aid, list := range grouped {
		primedVersions[aid] = list
	}
	m.versions.prime(primedVersions)
	return m
}

// GetAll 列出全部文章（新者在前）
func (m *ArticleManager) GetAll(ctx context.Context) []*model.Article {
	rows, err := m.gw.ListTopics(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("article list degraded to cache")
		return sortArticles(m.cache.list())
	}
	fresh := make(map[string]*model.Article, len(rows))
	for i := range rows {
		e := codec.ArticleToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortArticles(m.cache.list())
}

// GetByID 按 ID 查询；不存在返回 nil
func (m *ArticleManager) GetByID(ctx context.Context, articleID string) *model.Article {
	row, err := m.gw.GetTopic(ctx, articleID)
	if err != nil {
		log.Warn().Err(err).Str("article_id", articleID).Msg("article get degraded to cache")
		cached, _ := m.cache.get(articleID)
		return cached
	}
	if row == nil {
		return nil
	}
	e := codec.ArticleToEntity(row)
	m.cache.put(e.ID, e)
	return e
}

// ByAuthor 按作者过滤
func (m *ArticleManager) ByAuthor(ctx context.Context, authorID string) []*model.Article {
	rows, err := m.gw.TopicsByAuthor(ctx, authorID)
	if err == nil {
		return decodeArticles(rows)
	}
	log.Warn().Err(err).Msg("articles by author degraded to cache")
	var out []*model.Article
	for _, a := range sortArticles(m.cache.list()) {
		if a.AuthorID == authorID {
			out = append(out, a)
		}
	}
	return out
}

// ByRegion 按地区过滤
func (m *ArticleManager) ByRegion(ctx context.Context, regionID string) []*model.Article {
	rows, err := m.gw.TopicsByRegion(ctx, regionID)
	if err == nil {
		return decodeArticles(rows)
	}
	log.Warn().Err(err).Msg("articles by region degraded to cache")
	var out []*model.Article
	for _, a := range sortArticles(m.cache.list()) {
		if a.RegionID == regionID {
			out = append(out, a)
		}
	}
	return out
}

// Search 标题/正文的关键词检索
// 远端可达时走远端检索接口，降级时在缓存上做本地匹配
func (m *ArticleManager) Search(ctx context.Context, keyword string) []*model.Article {
	if keyword != "" {
		rows, err := m.gw.SearchTopics(ctx, keyword)
		if err == nil {
			return decodeArticles(rows)
		}
		log.Warn().Err(err).Msg("article search degraded to local matching")
	}
	var out []*model.Article
	for _, a := range m.GetAll(ctx) {
		if m.matcher.Match(keyword, a.Title.Primary(), a.Content.Primary()) {
			out = append(out, a)
		}
	}
	return out
}

// List 分页查询，过滤条件 AND 叠加
func (m *ArticleManager) List(ctx context.Context, opts ListOptions) *ArticlePage {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = defaultPageSize
	}

	var filtered []*model.Article
	for _, a := range m.GetAll(ctx) {
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		if opts.AuthorID != "" && a.AuthorID != opts.AuthorID {
			continue
		}
		if opts.RegionID != "" && a.RegionID != opts.RegionID {
			continue
		}
		if opts.Keyword != "" && !m.matcher.Match(opts.Keyword, a.Title.Primary(), a.Content.Primary()) {
			continue
		}
		filtered = append(filtered, a)
	}

	total := len(filtered)
	totalPages := (total + opts.PageSize - 1) / opts.PageSize
	start := (opts.Page - 1) * opts.PageSize
	if start > total {
		start = total
	}
	end := start + opts.PageSize
	if end > total {
		end = total
	}

	return &ArticlePage{
		Items: filtered[start:end],
		Pagination: Pagination{
			Page:       opts.Page,
			PageSize:   opts.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// Create 新建文章，初始状态 draft（payload 显式指定时沿用指定值）
func (m *ArticleManager) Create(ctx context.Context, input *model.Article) (article *model.Article, durable bool, err error) {
	if input == nil || input.Title.Primary() == "" {
		return nil, false, validationf("文章标题不能为空")
	}
	if input.AuthorID == "" {
		return nil, false, validationf("文章必须有作者")
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, false, validationf("非法状态 %q", input.Status)
	}

	now := time.Now()
	e := cloneArticle(input)
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = model.StatusDraft
	}

	created, gerr := m.gw.CreateTopic(ctx, codec.ArticleToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("article create degraded to cache-only write")
		e.ID = id.Sequential(id.ArticlePrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		m.appendVersion(ctx, e.ID, "创建文章，初始状态 "+string(e.Status), e.AuthorID)
		return e, false, nil
	}
	e = codec.ArticleToEntity(created)
	m.cache.put(e.ID, e)
	m.appendVersion(ctx, e.ID, "创建文章，初始状态 "+string(e.Status), e.AuthorID)
	return e, true, nil
}

// Update 合并更新；patch 带 status 时视作状态流转并追加版本记录
// AuthorID 不可变更，patch 中没有它的位置
func (m *ArticleManager) Update(ctx context.Context, articleID string, patch *model.ArticlePatch, actorID string) (article *model.Article, durable bool, err error) {
	current := m.GetByID(ctx, articleID)
	if current == nil {
		return nil, false, nil
	}
	if patch == nil {
		return current, true, nil
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, false, validationf("非法状态 %q", *patch.Status)
	}

	prevStatus := current.Status
	next := applyArticlePatch(current, patch)

	updated, gerr := m.gw.UpdateTopic(ctx, articleID, codec.ArticleToRow(next))
	if gerr != nil {
		log.Warn().Err(gerr).Str("article_id", articleID).Msg("article update degraded to cache-only write")
		m.cache.put(articleID, next)
		durable = false
		article = next
	} else {
		article = codec.ArticleToEntity(updated)
		m.cache.put(article.ID, article)
		durable = true
	}

	if patch.Status != nil {
		m.appendVersion(ctx, articleID,
			fmt.Sprintf("状态流转 %s → %s", prevStatus, *patch.Status), actorID)
	}
	return article, durable, nil
}

// ChangeStatus 状态流转
// 任意状态之间都允许流转；每次流转追加一条版本记录
func (m *ArticleManager) ChangeStatus(ctx context.Context, articleID string, status model.ArticleStatus, actorID string) (article *model.Article, durable bool, err error) {
	if !status.IsValid() {
		return nil, false, validationf("非法状态 %q", status)
	}
	return m.Update(ctx, articleID, &model.ArticlePatch{Status: &status}, actorID)
}

// Versions 文章版本记录（旧者在前）
func (m *ArticleManager) Versions(ctx context.Context, articleID string) []*model.ArticleVersion {
	rows, err := m.gw.ListTopicVersions(ctx, articleID)
	if err != nil {
		log.Warn().Err(err).Str("article_id", articleID).Msg("article versions degraded to cache")
		if cached, ok := m.versions.get(articleID); ok {
			return append([]*model.ArticleVersion(nil), *cached...)
		}
		return nil
	}
	out := make([]*model.ArticleVersion, 0, len(rows))
	for i := range rows {
		out = append(out, codec.VersionToEntity(&rows[i]))
	}
	m.versions.put(articleID, &out)
	return append([]*model.ArticleVersion(nil), out...)
}

// Delete 删除文章；removed 表示确有删除
func (m *ArticleManager) Delete(ctx context.Context, articleID string) (removed bool, durable bool, err error) {
	ok, gerr := m.gw.DeleteTopic(ctx, articleID)
	if gerr != nil {
		log.Warn().Err(gerr).Str("article_id", articleID).Msg("article delete degraded to cache-only write")
		return m.cache.delete(articleID), false, nil
	}
	if ok {
		m.cache.delete(articleID)
	}
	return ok, true, nil
}

// LastUpdated 最近一次远端同步时间；从未同步过时 ok=false
func (m *ArticleManager) LastUpdated() (t time.Time, ok bool) {
	return m.cache.lastSynced()
}

// anyInRegion 地区删除守卫用：该地区下是否有文章
func (m *ArticleManager) anyInRegion(ctx context.Context, regionID string) bool {
	return len(m.ByRegion(ctx, regionID)) > 0
}

// anyInCategory 分类删除守卫用
func (m *ArticleManager) anyInCategory(ctx context.Context, categoryID string) bool {
	for _, a := range m.GetAll(ctx) {
		if a.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// detachTag 把标签从所有缓存文章的标签列表中摘除
func (m *ArticleManager) detachTag(ctx context.Context, tagID string) {
	for _, a := range m.GetAll(ctx) {
		kept := a.TagIDs[:0:0]
		changed := false
		for _, t := range a.TagIDs {
			if t == tagID {
				changed = true
				continue
			}
			kept = append(kept, t)
		}
		if changed {
			next := cloneArticle(a)
			next.TagIDs = kept
			m.cache.put(a.ID, next)
		}
	}
}

// appendVersion 追加版本记录；远端不可达时只进缓存
func (m *ArticleManager) appendVersion(ctx context.Context, articleID, description, actorID string) {
	v := &model.ArticleVersion{
		ID:                id.New(),
		ArticleID:         articleID,
		ChangeDescription: description,
		AuthorID:          actorID,
		CreatedAt:         time.Now(),
	}
	if _, err := m.gw.CreateTopicVersion(ctx, articleID, codec.VersionToRow(v)); err != nil {
		log.Warn().Err(err).Str("article_id", articleID).Msg("version append degraded to cache-only write")
	}
	list, ok := m.versions.get(articleID)
	if !ok {
		list = &[]*model.ArticleVersion{}
	}
	appended := append(append([]*model.ArticleVersion(nil), *list...), v)
	m.versions.put(articleID, &appended)
}

func applyArticlePatch(current *model.Article, patch *model.ArticlePatch) *model.Article {
	next := cloneArticle(current)
	if patch.Title != nil {
		next.Title = patch.Title.Clone()
	}
	if patch.CoverURL != nil {
		next.CoverURL = *patch.CoverURL
	}
	if patch.Content != nil {
		next.Content = patch.Content.Clone()
	}
	if patch.RegionID != nil {
		next.RegionID = *patch.RegionID
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Coordinates != nil {
		c := *patch.Coordinates
		next.Coordinates = &c
	}
	if patch.TrackData != nil {
		next.TrackData = append([]model.Coordinates(nil), patch.TrackData...)
	}
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
	}
	if patch.TagIDs != nil {
		next.TagIDs = append([]string(nil), patch.TagIDs...)
	}
	next.UpdatedAt = time.Now()
	return next
}

func cloneArticle(a *model.Article) *model.Article {
	c := *a
	c.Title = a.Title.Clone()
	c.Content = a.Content.Clone()
	if a.Coordinates != nil {
		coord := *a.Coordinates
		c.Coordinates = &coord
	}
	c.TrackData = append([]model.Coordinates(nil), a.TrackData...)
	c.TagIDs = append([]string(nil), a.TagIDs...)
	return &c
}

func decodeArticles(rows []codec.TopicRow) []*model.Article {
	out := make([]*model.Article, 0, len(rows))
	for i := range rows {
		out = append(out, codec.ArticleToEntity(&rows[i]))
	}
	return out
}

func sortArticles(items []*model.Article) []*model.Article {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}
