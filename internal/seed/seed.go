// Package seed 提供冷启动兜底数据集。
// 快照以关系行格式随二进制打包（go:embed），加载时经 codec 转换为应用实体；
// 远端存储不可达且缓存从未填充时，管理器用它兜底。快照上的写入只进内存，
// 不落盘。
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"atlas/internal/codec"
	"atlas/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

// Source 兜底数据源
// 每次调用返回独立副本，调用方可以放心改写
type Source interface {
	Regions() []*model.Region
	Articles() []*model.Article
	Versions() []*model.ArticleVersion
	Users() []*model.User
	Roles() []*model.Role
	Permissions() []*model.Permission
	Categories() []*model.Category
	Tags() []*model.Tag
}

type snapshot struct {
	regions     []codec.RegionRow
	topics      []codec.TopicRow
	versions    []codec.TopicVersionRow
	users       []codec.UserRow
	roles       []codec.RoleRow
	permissions []codec.PermissionRow
	categories  []codec.CategoryRow
	tags        []codec.TagRow
}

// Embedded 加载打包进二进制的快照
func Embedded() (Source, error) {
	s := &snapshot{}
	if err := loadAll(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Empty 空数据源，测试与纯远端部署使用
func Empty() Source {
	return &snapshot{}
}

func loadAll(s *snapshot) error {
	for _, part := range []struct {
		file string
		dest any
	}{
		{"data/regions.json", &s.regions},
		{"data/topics.json", &s.topics},
		{"data/topic_versions.json", &s.versions},
		{"data/users.json", &s.users},
		{"data/roles.json", &s.roles},
		{"data/permissions.json", &s.permissions},
		{"data/categories.json", &s.categories},
		{"data/tags.json", &s.tags},
	} {
		raw, err := dataFS.ReadFile(part.file)
		if err != nil {
			return fmt.Errorf("seed: read %s: %w", part.file, err)
		}
		if err := json.Unmarshal(raw, part.dest); err != nil {
			return fmt.Errorf("seed: parse %s: %w", part.file, err)
		}
	}
	return nil
}

func (s *snapshot) Regions() []*model.Region {
	out := make([]*model.Region, 0, len(s.regions))
	for i := range s.regions {
		out = append(out, codec.RegionToEntity(&s.regions[i]))
	}
	return out
}

func (s *snapshot) Articles() []*model.Article {
	out := make([]*model.Article, 0, len(s.topics))
	for i := range s.topics {
		out = append(out, codec.ArticleToEntity(&s.topics[i]))
	}
	return out
}

func (s *snapshot) Versions() []*model.ArticleVersion {
	out := make([]*model.ArticleVersion, 0, len(s.versions))
	for i := range s.versions {
		out = append(out, codec.VersionToEntity(&s.versions[i]))
	}
	return out
}

func (s *snapshot) Users() []*model.User {
	out := make([]*model.User, 0, len(s.users))
	for i := range s.users {
		out = append(out, codec.UserToEntity(&s.users[i]))
	}
	return out
}

func (s *snapshot) Roles() []*model.Role {
	out := make([]*model.Role, 0, len(s.roles))
	for i := range s.roles {
		out = append(out, codec.RoleToEntity(&s.roles[i]))
	}
	return out
}

func (s *snapshot) Permissions() []*model.Permission {
	out := make([]*model.Permission, 0, len(s.permissions))
	for i := range s.permissions {
		out = append(out, codec.PermissionToEntity(&s.permissions[i]))
	}
	return out
}

func (s *snapshot) Categories() []*model.Category {
	out := make([]*model.Category, 0, len(s.categories))
	for i := range s.categories {
		out = append(out, codec.CategoryToEntity(&s.categories[i]))
	}
	return out
}

func (s *snapshot) Tags() []*model.Tag {
	out := make([]*model.Tag, 0, len(s.tags))
	for i := range s.tags {
		out = append(out, codec.TagToEntity(&s.tags[i]))
	}
	return out
}
