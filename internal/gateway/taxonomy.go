package gateway

import (
	"context"

	"atlas/internal/codec"
)

// ListCategories 列出全部分类行
func (c *Client) ListCategories(ctx context.Context) ([]codec.CategoryRow, error) {
	return getList[codec.CategoryRow](ctx, c, "list categories", "/categories", nil)
}

// GetCategory 按 ID 查询分类行，不存在返回 (nil, nil)
func (c *Client) GetCategory(ctx context.Context, id string) (*codec.CategoryRow, error) {
	return getOne[codec.CategoryRow](ctx, c, "get category", resourcePath("categories", id))
}

// CreateCategory 新建分类行
func (c *Client) CreateCategory(ctx context.Context, row *codec.CategoryRow) (*codec.CategoryRow, error) {
	return create(ctx, c, "create category", "/categories", row)
}

// UpdateCategory 整行覆盖更新
func (c *Client) UpdateCategory(ctx context.Context, id string, row *codec.CategoryRow) (*codec.CategoryRow, error) {
	return update(ctx, c, "update category", resourcePath("categories", id), row)
}

// DeleteCategory 删除分类行，返回是否确有删除
func (c *Client) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete category", resourcePath("categories", id))
}

// ListTags 列出全部标签行
func (c *Client) ListTags(ctx context.Context) ([]codec.TagRow, error) {
	return getList[codec.TagRow](ctx, c, "list tags", "/tags", nil)
}

// CreateTag 新建标签行
func (c *Client) CreateTag(ctx context.Context, row *codec.TagRow) (*codec.TagRow, error) {
	return create(ctx, c, "create tag", "/tags", row)
}

// DeleteTag 删除标签行，返回是否确有删除
func (c *Client) DeleteTag(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete tag", resourcePath("tags", id))
}
