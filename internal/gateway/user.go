package gateway

import (
	"context"

	"atlas/internal/codec"
)

// ListUsers 列出全部用户行
func (c *Client) ListUsers(ctx context.Context) ([]codec.UserRow, error) {
	return getList[codec.UserRow](ctx, c, "list users", "/users", nil)
}

// GetUser 按 ID 查询用户行，不存在返回 (nil, nil)
func (c *Client) GetUser(ctx context.Context, id string) (*codec.UserRow, error) {
	return getOne[codec.UserRow](ctx, c, "get user", resourcePath("users", id))
}

// UserByUsername 按用户名精确查询
func (c *Client) UserByUsername(ctx context.Context, username string) (*codec.UserRow, error) {
	return firstOrNil(getList[codec.UserRow](ctx, c, "user by username", "/users", map[string]string{"username": username}))
}

// UserByEmail 按邮箱精确查询
func (c *Client) UserByEmail(ctx context.Context, email string) (*codec.UserRow, error) {
	return firstOrNil(getList[codec.UserRow](ctx, c, "user by email", "/users", map[string]string{"email": email}))
}

// UserByPhone 按手机号精确查询
func (c *Client) UserByPhone(ctx context.Context, phone string) (*codec.UserRow, error) {
	return firstOrNil(getList[codec.UserRow](ctx, c, "user by phone", "/users", map[string]string{"phone": phone}))
}

// UsersByRole 按角色过滤
func (c *Client) UsersByRole(ctx context.Context, role string) ([]codec.UserRow, error) {
	return getList[codec.UserRow](ctx, c, "users by role", "/users", map[string]string{"role": role})
}

// CreateUser 新建用户行
func (c *Client) CreateUser(ctx context.Context, row *codec.UserRow) (*codec.UserRow, error) {
	return create(ctx, c, "create user", "/users", row)
}

// UpdateUser 整行覆盖更新
func (c *Client) UpdateUser(ctx context.Context, id string, row *codec.UserRow) (*codec.UserRow, error) {
	return update(ctx, c, "update user", resourcePath("users", id), row)
}

// DeleteUser 删除用户行，返回是否确有删除
func (c *Client) DeleteUser(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete user", resourcePath("users", id))
}

// firstOrNil 精确查询走集合接口，取第一条；空结果不是错误
func firstOrNil[T any](rows []T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
