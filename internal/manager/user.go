package manager

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"atlas/internal/codec"
	"atlas/internal/model"
	"atlas/internal/pkg/id"
	"atlas/internal/seed"
)

// UserManager 用户管理器
type UserManager struct {
	gw    UserGateway
	cache *cache[model.User]
}

func newUserManager(gw UserGateway, src seed.Source) *UserManager {
	m := &UserManager{gw: gw, cache: newCache[model.User]()}
	primed := make(map[string]*model.User)
	for _, u := range src.Users() {
		primed[u.ID] = u
	}
	m.cache.prime(primed)
	return m
}

// GetAll 列出全部用户
func (m *UserManager) GetAll(ctx context.Context) []*model.User {
	rows, err := m.gw.ListUsers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("user list degraded to cache")
		return sortUsers(m.cache.list())
	}
	fresh := make(map[string]*model.User, len(rows))
	for i := range rows {
		e := codec.UserToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortUsers(m.cache.list())
}

// GetByID 按 ID 查询；不存在返回 nil
func (m *UserManager) GetByID(ctx context.Context, userID string) *model.User {
	row, err := m.gw.GetUser(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("user get degraded to cache")
		cached, _ := m.cache.get(userID)
		return cached
	}
	if row == nil {
		return nil
	}
	e := codec.UserToEntity(row)
	m.cache.put(e.ID, e)
	return e
}

// GetByUsername 按用户名精确查询；不存在返回 nil
func (m *UserManager) GetByUsername(ctx context.Context, username string) *model.User {
	row, err := m.gw.UserByUsername(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("user lookup degraded to cache")
		for _, u := range m.cache.list() {
			if u.Username == username {
				return u
			}
		}
		return nil
	}
	return codec.UserToEntity(row)
}

// ByRole 按角色过滤
func (m *UserManager) ByRole(ctx context.Context, role string) []*model.User {
	rows, err := m.gw.UsersByRole(ctx, role)
	if err == nil {
		out := make([]*model.User, 0, len(rows))
		for i := range rows {
			out = append(out, codec.UserToEntity(&rows[i]))
		}
		return out
	}
	log.Warn().Err(err).Msg("users by role degraded to cache")
	var out []*model.User
	for _, u := range sortUsers(m.cache.list()) {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Create 新建用户
// 用户名/邮箱必须唯一，手机号非空时唯一（空串归一化为缺失）
func (m *UserManager) Create(ctx context.Context, input *model.User) (user *model.User, durable bool, err error) {
	if input == nil || input.Username == "" {
		return nil, false, validationf("用户名不能为空")
	}
	if input.Email == "" {
		return nil, false, validationf("邮箱不能为空")
	}

	e := cloneUser(input)
	e.Phone = strings.TrimSpace(e.Phone)
	if e.Role == "" {
		e.Role = model.RoleViewer
	}
	if reason := m.uniquenessConflict(ctx, "", e); reason != "" {
		return nil, false, validationf("%s", reason)
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	created, gerr := m.gw.CreateUser(ctx, codec.UserToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("user create degraded to cache-only write")
		e.ID = id.Sequential(id.UserPrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		return e, false, nil
	}
	e = codec.UserToEntity(created)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Update 合并更新
func (m *UserManager) Update(ctx context.Context, userID string, patch *model.UserPatch) (user *model.User, durable bool, err error) {
	current := m.GetByID(ctx, userID)
	if current == nil {
		return nil, false, nil
	}
	if patch == nil {
		return current, true, nil
	}

	next := applyUserPatch(current, patch)
	if reason := m.uniquenessConflict(ctx, userID, next); reason != "" {
		return nil, false, validationf("%s", reason)
	}

	updated, gerr := m.gw.UpdateUser(ctx, userID, codec.UserToRow(next))
	if gerr != nil {
		log.Warn().Err(gerr).Str("user_id", userID).Msg("user update degraded to cache-only write")
		m.cache.put(userID, next)
		return next, false, nil
	}
	e := codec.UserToEntity(updated)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Delete 删除用户；removed 表示确有删除
func (m *UserManager) Delete(ctx context.Context, userID string) (removed bool, durable bool, err error) {
	ok, gerr := m.gw.DeleteUser(ctx, userID)
	if gerr != nil {
		log.Warn().Err(gerr).Str("user_id", userID).Msg("user delete degraded to cache-only write")
		return m.cache.delete(userID), false, nil
	}
	if ok {
		m.cache.delete(userID)
	}
	return ok, true, nil
}

// uniquenessConflict 检查用户名/邮箱/手机号唯一性，返回冲突原因（空串为无冲突）
// selfID 非空时忽略自身记录（更新场景）
func (m *UserManager) uniquenessConflict(ctx context.Context, selfID string, candidate *model.User) string {
	if reason, ok := m.remoteConflict(ctx, selfID, candidate); ok {
		return reason
	}
	// 远端不可达，降级扫缓存
	for _, u := range m.cache.list() {
		if u.ID == selfID {
			continue
		}
		if u.Username == candidate.Username {
			return "用户名已被占用"
		}
		if u.Email == candidate.Email {
			return "邮箱已被注册"
		}
		if candidate.Phone != "" && u.Phone == candidate.Phone {
			return "手机号已被绑定"
		}
	}
	return ""
}

// remoteConflict 用远端精确查询做唯一性检查；ok=false 表示远端不可达
func (m *UserManager) remoteConflict(ctx context.Context, selfID string, candidate *model.User) (reason string, ok bool) {
	row, err := m.gw.UserByUsername(ctx, candidate.Username)
	if err != nil {
		return "", false
	}
	if row != nil && row.UserID != selfID {
		return "用户名已被占用", true
	}
	row, err = m.gw.UserByEmail(ctx, candidate.Email)
	if err != nil {
		return "", false
	}
	if row != nil && row.UserID != selfID {
		return "邮箱已被注册", true
	}
	if candidate.Phone != "" {
		row, err = m.gw.UserByPhone(ctx, candidate.Phone)
		if err != nil {
			return "", false
		}
		if row != nil && row.UserID != selfID {
			return "手机号已被绑定", true
		}
	}
	return "", true
}

func applyUserPatch(current *model.User, patch *model.UserPatch) *model.User {
	next := cloneUser(current)
	if patch.Email != nil {
		next.Email = *patch.Email
	}
	if patch.Phone != nil {
		next.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.PasswordHash != nil {
		next.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		next.Role = *patch.Role
	}
	next.UpdatedAt = time.Now()
	return next
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func sortUsers(items []*model.User) []*model.User {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
