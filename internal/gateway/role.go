package gateway

import (
	"context"

	"atlas/internal/codec"
)

// ListRoles 列出全部角色行
func (c *Client) ListRoles(ctx context.Context) ([]codec.RoleRow, error) {
	return getList[codec.RoleRow](ctx, c, "list roles", "/roles", nil)
}

// GetRole 按 ID 查询角色行，不存在返回 (nil, nil)
func (c *Client) GetRole(ctx context.Context, id string) (*codec.RoleRow, error) {
	return getOne[codec.RoleRow](ctx, c, "get role", resourcePath("roles", id))
}

// CreateRole 新建角色行
func (c *Client) CreateRole(ctx context.Context, row *codec.RoleRow) (*codec.RoleRow, error) {
	return create(ctx, c, "create role", "/roles", row)
}

// UpdateRole 整行覆盖更新
func (c *Client) UpdateRole(ctx context.Context, id string, row *codec.RoleRow) (*codec.RoleRow, error) {
	return update(ctx, c, "update role", resourcePath("roles", id), row)
}

// DeleteRole 删除角色行，返回是否确有删除
func (c *Client) DeleteRole(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete role", resourcePath("roles", id))
}

// ListPermissions 列出全部权限行
func (c *Client) ListPermissions(ctx context.Context) ([]codec.PermissionRow, error) {
	return getList[codec.PermissionRow](ctx, c, "list permissions", "/permissions", nil)
}

// ListRolePermissions 列出角色-权限关联
func (c *Client) ListRolePermissions(ctx context.Context, roleID string) ([]codec.PermissionRow, error) {
	return getList[codec.PermissionRow](ctx, c, "list role permissions", resourcePath("roles", roleID)+"/permissions", nil)
}
