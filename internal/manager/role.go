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

// RoleManager 角色与权限管理器
type RoleManager struct {
	gw          RoleGateway
	cache       *cache[model.Role]
	permissions *cache[model.Permission]
	users       *UserManager // 删除守卫查已分配用户
}

func newRoleManager(gw RoleGateway, src seed.Source) *RoleManager {
	m := &RoleManager{
		gw:          gw,
		cache:       newCache[model.Role](),
		permissions: newCache[model.Permission](),
	}
	primed := make(map[string]*model.Role)
	for _, r := range src.Roles() {
		primed[r.ID] = r
	}
	m.cache.prime(primed)

	primedPerms := make(map[string]*model.Permission)
	for _, p := range src.Permissions() {
		primedPerms[p.ID] = p
	}
	m.permissions.prime(primedPerms)
	return m
}

// GetAll 列出全部角色
func (m *RoleManager) GetAll(ctx context.Context) []*model.Role {
	rows, err := m.gw.ListRoles(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("role list degraded to cache")
		return sortRoles(m.cache.list())
	}
	fresh := make(map[string]*model.Role, len(rows))
	for i := range rows {
		e := codec.RoleToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.cache.replaceAll(fresh)
	return sortRoles(m.cache.list())
}

// GetByID 按 ID 查询；不存在返回 nil
func (m *RoleManager) GetByID(ctx context.Context, roleID string) *model.Role {
	row, err := m.gw.GetRole(ctx, roleID)
	if err != nil {
		log.Warn().Err(err).Str("role_id", roleID).Msg("role get degraded to cache")
		cached, _ := m.cache.get(roleID)
		return cached
	}
	if row == nil {
		return nil
	}
	e := codec.RoleToEntity(row)
	m.cache.put(e.ID, e)
	return e
}

// Permissions 列出全部权限项
func (m *RoleManager) Permissions(ctx context.Context) []*model.Permission {
	rows, err := m.gw.ListPermissions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("permission list degraded to cache")
		out := m.permissions.list()
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out
	}
	fresh := make(map[string]*model.Permission, len(rows))
	for i := range rows {
		e := codec.PermissionToEntity(&rows[i])
		fresh[e.ID] = e
	}
	m.permissions.replaceAll(fresh)
	out := m.permissions.list()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PermissionsOf 列出指定角色已分配的权限项
// 角色-权限关联只存在于远端，降级时返回空列表
func (m *RoleManager) PermissionsOf(ctx context.Context, roleID string) []*model.Permission {
	rows, err := m.gw.ListRolePermissions(ctx, roleID)
	if err != nil {
		log.Warn().Err(err).Str("role_id", roleID).Msg("role permissions unavailable while degraded")
		return nil
	}
	out := make([]*model.Permission, 0, len(rows))
	for i := range rows {
		out = append(out, codec.PermissionToEntity(&rows[i]))
	}
	return out
}

// Create 新建角色
func (m *RoleManager) Create(ctx context.Context, input *model.Role) (role *model.Role, durable bool, err error) {
	if input == nil || input.Name == "" {
		return nil, false, validationf("角色名不能为空")
	}
	for _, r := range m.GetAll(ctx) {
		if r.Name == input.Name {
			return nil, false, validationf("角色名已存在")
		}
	}

	now := time.Now()
	e := &model.Role{
		Name:        input.Name,
		Description: input.Description,
		IsSystem:    input.IsSystem,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, gerr := m.gw.CreateRole(ctx, codec.RoleToRow(e))
	if gerr != nil {
		log.Warn().Err(gerr).Msg("role create degraded to cache-only write")
		e.ID = id.Sequential(id.RolePrefix, m.cache.keys())
		m.cache.put(e.ID, e)
		return e, false, nil
	}
	e = codec.RoleToEntity(created)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Update 合并更新
// 系统角色不可降级为非系统角色
func (m *RoleManager) Update(ctx context.Context, roleID string, patch *model.RolePatch) (role *model.Role, durable bool, err error) {
	current := m.GetByID(ctx, roleID)
	if current == nil {
		return nil, false, nil
	}
	if patch == nil {
		return current, true, nil
	}
	if current.IsSystem && patch.IsSystem != nil && !*patch.IsSystem {
		return nil, false, validationf("系统角色不能降级为非系统角色")
	}

	next := *current
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.IsSystem != nil {
		next.IsSystem = *patch.IsSystem
	}
	next.UpdatedAt = time.Now()

	updated, gerr := m.gw.UpdateRole(ctx, roleID, codec.RoleToRow(&next))
	if gerr != nil {
		log.Warn().Err(gerr).Str("role_id", roleID).Msg("role update degraded to cache-only write")
		m.cache.put(roleID, &next)
		return &next, false, nil
	}
	e := codec.RoleToEntity(updated)
	m.cache.put(e.ID, e)
	return e, true, nil
}

// Delete 删除角色
// 系统角色或仍有用户分配的角色不能删除
func (m *RoleManager) Delete(ctx context.Context, roleID string) (removed bool, durable bool, err error) {
	current := m.GetByID(ctx, roleID)
	if current == nil {
		return false, true, nil
	}
	if current.IsSystem {
		return false, false, validationf("系统角色不能删除")
	}
	if m.users != nil && len(m.users.ByRole(ctx, current.Name)) > 0 {
		return false, false, validationf("角色仍分配给用户，不能删除")
	}

	ok, gerr := m.gw.DeleteRole(ctx, roleID)
	if gerr != nil {
		log.Warn().Err(gerr).Str("role_id", roleID).Msg("role delete degraded to cache-only write")
		return m.cache.delete(roleID), false, nil
	}
	if ok {
		m.cache.delete(roleID)
	}
	return ok, true, nil
}

func sortRoles(items []*model.Role) []*model.Role {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
