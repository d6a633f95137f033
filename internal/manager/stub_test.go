package manager_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"atlas/internal/codec"
	"atlas/internal/gateway"
)

// stubGateway 内存网关桩：down=true 时所有调用返回 TransportError，
// 否则表现为一个行为正确的远端存储
type stubGateway struct {
	down bool

	mu       sync.Mutex
	seq      int
	regions  map[string]codec.RegionRow
	topics   map[string]codec.TopicRow
	versions map[string][]codec.TopicVersionRow
	users    map[string]codec.UserRow
	roles    map[string]codec.RoleRow
	perms    []codec.PermissionRow
	cats     map[string]codec.CategoryRow
	tags     map[string]codec.TagRow
}

func newStub(down bool) *stubGateway {
	return &stubGateway{
		down:     down,
		regions:  map[string]codec.RegionRow{},
		topics:   map[string]codec.TopicRow{},
		versions: map[string][]codec.TopicVersionRow{},
		users:    map[string]codec.UserRow{},
		roles:    map[string]codec.RoleRow{},
		cats:     map[string]codec.CategoryRow{},
		tags:     map[string]codec.TagRow{},
	}
}

func (s *stubGateway) fail(op string) error {
	return &gateway.TransportError{Op: op, Status: 503}
}

func (s *stubGateway) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s_%03d", prefix, 900+s.seq)
}

func (s *stubGateway) ListRegions(ctx context.Context) ([]codec.RegionRow, error) {
	if s.down {
		return nil, s.fail("list regions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.RegionRow, 0, len(s.regions))
	for _, r := range s.regions {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubGateway) GetRegion(ctx context.Context, id string) (*codec.RegionRow, error) {
	if s.down {
		return nil, s.fail("get region")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.regions[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *stubGateway) CreateRegion(ctx context.Context, row *codec.RegionRow) (*codec.RegionRow, error) {
	if s.down {
		return nil, s.fail("create region")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *row
	if r.RegionID == "" {
		r.RegionID = s.nextID("loc")
	}
	s.regions[r.RegionID] = r
	return &r, nil
}

func (s *stubGateway) UpdateRegion(ctx context.Context, id string, row *codec.RegionRow) (*codec.RegionRow, error) {
	if s.down {
		return nil, s.fail("update region")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *row
	r.RegionID = id
	s.regions[id] = r
	return &r, nil
}

func (s *stubGateway) DeleteRegion(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete region")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.regions[id]
	delete(s.regions, id)
	return ok, nil
}

func (s *stubGateway) ListTopics(ctx context.Context) ([]codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("list topics")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.TopicRow, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubGateway) GetTopic(ctx context.Context, id string) (*codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("get topic")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.topics[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *stubGateway) TopicsByAuthor(ctx context.Context, authorID string) ([]codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("topics by author")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []codec.TopicRow
	for _, t := range s.topics {
		if t.AuthorID == authorID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubGateway) TopicsByRegion(ctx context.Context, regionID string) ([]codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("topics by region")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []codec.TopicRow
	for _, t := range s.topics {
		if t.RegionID != nil && *t.RegionID == regionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubGateway) SearchTopics(ctx context.Context, keyword string) ([]codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("search topics")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []codec.TopicRow
	for _, t := range s.topics {
		if strings.Contains(t.Title, keyword) || strings.Contains(t.Content, keyword) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubGateway) CreateTopic(ctx context.Context, row *codec.TopicRow) (*codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("create topic")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *row
	if t.TopicID == "" {
		t.TopicID = s.nextID("topic")
	}
	s.topics[t.TopicID] = t
	return &t, nil
}

func (s *stubGateway) UpdateTopic(ctx context.Context, id string, row *codec.TopicRow) (*codec.TopicRow, error) {
	if s.down {
		return nil, s.fail("update topic")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *row
	t.TopicID = id
	s.topics[id] = t
	return &t, nil
}

func (s *stubGateway) DeleteTopic(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete topic")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.topics[id]
	delete(s.topics, id)
	return ok, nil
}

func (s *stubGateway) ListTopicVersions(ctx context.Context, topicID string) ([]codec.TopicVersionRow, error) {
	if s.down {
		return nil, s.fail("list topic versions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codec.TopicVersionRow(nil), s.versions[topicID]...), nil
}

func (s *stubGateway) CreateTopicVersion(ctx context.Context, topicID string, row *codec.TopicVersionRow) (*codec.TopicVersionRow, error) {
	if s.down {
		return nil, s.fail("create topic version")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *row
	s.versions[topicID] = append(s.versions[topicID], v)
	return &v, nil
}

func (s *stubGateway) ListUsers(ctx context.Context) ([]codec.UserRow, error) {
	if s.down {
		return nil, s.fail("list users")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.UserRow, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubGateway) GetUser(ctx context.Context, id string) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("get user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *stubGateway) UserByUsername(ctx context.Context, username string) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("user by username")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubGateway) UserByEmail(ctx context.Context, email string) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("user by email")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubGateway) UserByPhone(ctx context.Context, phone string) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("user by phone")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Phone != nil && *u.Phone == phone {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubGateway) UsersByRole(ctx context.Context, role string) ([]codec.UserRow, error) {
	if s.down {
		return nil, s.fail("users by role")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []codec.UserRow
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubGateway) CreateUser(ctx context.Context, row *codec.UserRow) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("create user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *row
	if u.UserID == "" {
		u.UserID = s.nextID("user")
	}
	s.users[u.UserID] = u
	return &u, nil
}

func (s *stubGateway) UpdateUser(ctx context.Context, id string, row *codec.UserRow) (*codec.UserRow, error) {
	if s.down {
		return nil, s.fail("update user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *row
	u.UserID = id
	s.users[id] = u
	return &u, nil
}

func (s *stubGateway) DeleteUser(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	delete(s.users, id)
	return ok, nil
}

func (s *stubGateway) ListRoles(ctx context.Context) ([]codec.RoleRow, error) {
	if s.down {
		return nil, s.fail("list roles")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.RoleRow, 0, len(s.roles))
	for _, r := range s.roles {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubGateway) GetRole(ctx context.Context, id string) (*codec.RoleRow, error) {
	if s.down {
		return nil, s.fail("get role")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.roles[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *stubGateway) CreateRole(ctx context.Context, row *codec.RoleRow) (*codec.RoleRow, error) {
	if s.down {
		return nil, s.fail("create role")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *row
	if r.RoleID == "" {
		r.RoleID = s.nextID("role")
	}
	s.roles[r.RoleID] = r
	return &r, nil
}

func (s *stubGateway) UpdateRole(ctx context.Context, id string, row *codec.RoleRow) (*codec.RoleRow, error) {
	if s.down {
		return nil, s.fail("update role")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *row
	r.RoleID = id
	s.roles[id] = r
	return &r, nil
}

func (s *stubGateway) DeleteRole(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete role")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.roles[id]
	delete(s.roles, id)
	return ok, nil
}

func (s *stubGateway) ListPermissions(ctx context.Context) ([]codec.PermissionRow, error) {
	if s.down {
		return nil, s.fail("list permissions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codec.PermissionRow(nil), s.perms...), nil
}

func (s *stubGateway) ListRolePermissions(ctx context.Context, roleID string) ([]codec.PermissionRow, error) {
	if s.down {
		return nil, s.fail("list role permissions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codec.PermissionRow(nil), s.perms...), nil
}

func (s *stubGateway) ListCategories(ctx context.Context) ([]codec.CategoryRow, error) {
	if s.down {
		return nil, s.fail("list categories")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.CategoryRow, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubGateway) GetCategory(ctx context.Context, id string) (*codec.CategoryRow, error) {
	if s.down {
		return nil, s.fail("get category")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cats[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *stubGateway) CreateCategory(ctx context.Context, row *codec.CategoryRow) (*codec.CategoryRow, error) {
	if s.down {
		return nil, s.fail("create category")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *row
	if c.CategoryID == "" {
		c.CategoryID = s.nextID("cat")
	}
	s.cats[c.CategoryID] = c
	return &c, nil
}

func (s *stubGateway) UpdateCategory(ctx context.Context, id string, row *codec.CategoryRow) (*codec.CategoryRow, error) {
	if s.down {
		return nil, s.fail("update category")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *row
	c.CategoryID = id
	s.cats[id] = c
	return &c, nil
}

func (s *stubGateway) DeleteCategory(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete category")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cats[id]
	delete(s.cats, id)
	return ok, nil
}

func (s *stubGateway) ListTags(ctx context.Context) ([]codec.TagRow, error) {
	if s.down {
		return nil, s.fail("list tags")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]codec.TagRow, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubGateway) CreateTag(ctx context.Context, row *codec.TagRow) (*codec.TagRow, error) {
	if s.down {
		return nil, s.fail("create tag")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *row
	if t.TagID == "" {
		t.TagID = s.nextID("tag")
	}
	s.tags[t.TagID] = t
	return &t, nil
}

func (s *stubGateway) DeleteTag(ctx context.Context, id string) (bool, error) {
	if s.down {
		return false, s.fail("delete tag")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tags[id]
	delete(s.tags, id)
	return ok, nil
}
