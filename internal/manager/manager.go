// Package manager 是数据一致性核心：每类实体一个管理器，编排
// 远端网关 + 编解码 + 兜底快照，维护以 ID 为键的内存缓存。
// 读操作永不因传输失败报错（降级返回缓存），写操作在远端不可达时
// 只写缓存并以 durable=false 标记为非持久写入。
package manager

import (
	"context"

	"atlas/internal/codec"
	"atlas/internal/search"
	"atlas/internal/seed"
)

// RegionGateway 地区远端操作
type RegionGateway interface {
	ListRegions(ctx context.Context) ([]codec.RegionRow, error)
	GetRegion(ctx context.Context, id string) (*codec.RegionRow, error)
	CreateRegion(ctx context.Context, row *codec.RegionRow) (*codec.RegionRow, error)
	UpdateRegion(ctx context.Context, id string, row *codec.RegionRow) (*codec.RegionRow, error)
	DeleteRegion(ctx context.Context, id string) (bool, error)
}

// ArticleGateway 文章远端操作
type ArticleGateway interface {
	ListTopics(ctx context.Context) ([]codec.TopicRow, error)
	GetTopic(ctx context.Context, id string) (*codec.TopicRow, error)
	TopicsByAuthor(ctx context.Context, authorID string) ([]codec.TopicRow, error)
	TopicsByRegion(ctx context.Context, regionID string) ([]codec.TopicRow, error)
	SearchTopics(ctx context.Context, keyword string) ([]codec.TopicRow, error)
	CreateTopic(ctx context.Context, row *codec.TopicRow) (*codec.TopicRow, error)
	UpdateTopic(ctx context.Context, id string, row *codec.TopicRow) (*codec.TopicRow, error)
	DeleteTopic(ctx context.Context, id string) (bool, error)
	ListTopicVersions(ctx context.Context, topicID string) ([]codec.TopicVersionRow, error)
	CreateTopicVersion(ctx context.Context, topicID string, row *codec.TopicVersionRow) (*codec.TopicVersionRow, error)
}

// UserGateway 用户远端操作
type UserGateway interface {
	ListUsers(ctx context.Context) ([]codec.UserRow, error)
	GetUser(ctx context.Context, id string) (*codec.UserRow, error)
	UserByUsername(ctx context.Context, username string) (*codec.UserRow, error)
	UserByEmail(ctx context.Context, email string) (*codec.UserRow, error)
	UserByPhone(ctx context.Context, phone string) (*codec.UserRow, error)
	UsersByRole(ctx context.Context, role string) ([]codec.UserRow, error)
	CreateUser(ctx context.Context, row *codec.UserRow) (*codec.UserRow, error)
	UpdateUser(ctx context.Context, id string, row *codec.UserRow) (*codec.UserRow, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

// RoleGateway 角色与权限远端操作
type RoleGateway interface {
	ListRoles(ctx context.Context) ([]codec.RoleRow, error)
	GetRole(ctx context.Context, id string) (*codec.RoleRow, error)
	CreateRole(ctx context.Context, row *codec.RoleRow) (*codec.RoleRow, error)
	UpdateRole(ctx context.Context, id string, row *codec.RoleRow) (*codec.RoleRow, error)
	DeleteRole(ctx context.Context, id string) (bool, error)
	ListPermissions(ctx context.Context) ([]codec.PermissionRow, error)
	ListRolePermissions(ctx context.Context, roleID string) ([]codec.PermissionRow, error)
}

// TaxonomyGateway 分类与标签远端操作
type TaxonomyGateway interface {
	ListCategories(ctx context.Context) ([]codec.CategoryRow, error)
	GetCategory(ctx context.Context, id string) (*codec.CategoryRow, error)
	CreateCategory(ctx context.Context, row *codec.CategoryRow) (*codec.CategoryRow, error)
	UpdateCategory(ctx context.Context, id string, row *codec.CategoryRow) (*codec.CategoryRow, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
	ListTags(ctx context.Context) ([]codec.TagRow, error)
	CreateTag(ctx context.Context, row *codec.TagRow) (*codec.TagRow, error)
	DeleteTag(ctx context.Context, id string) (bool, error)
}

// Gateway 全量远端操作，*gateway.Client 实现它
type Gateway interface {
	RegionGateway
	ArticleGateway
	UserGateway
	RoleGateway
	TaxonomyGateway
}

// Manager 数据核心聚合根
// 生命周期归调用方所有：网关与兜底数据源都由构造参数注入
type Manager struct {
	Regions    *RegionManager
	Articles   *ArticleManager
	Users      *UserManager
	Roles      *RoleManager
	Categories *CategoryManager
	Tags       *TagManager
}

// New 创建数据核心
// matcher 为 nil 时使用纯子串匹配
func New(gw Gateway, src seed.Source, matcher *search.Matcher) *Manager {
	if src == nil {
		src = seed.Empty()
	}
	if matcher == nil {
		matcher = search.Plain()
	}

	m := &Manager{
		Regions:    newRegionManager(gw, src, matcher),
		Articles:   newArticleManager(gw, src, matcher),
		Users:      newUserManager(gw, src),
		Roles:      newRoleManager(gw, src),
		Categories: newCategoryManager(gw, src),
		Tags:       newTagManager(gw, src),
	}

	// 引用完整性守卫需要跨实体视图
	m.Regions.articles = m.Articles
	m.Categories.articles = m.Articles
	m.Tags.articles = m.Articles
	m.Roles.users = m.Users

	return m
}
