package gateway

import (
	"context"

	"atlas/internal/codec"
)

// ListRegions 列出全部地区行
func (c *Client) ListRegions(ctx context.Context) ([]codec.RegionRow, error) {
	return getList[codec.RegionRow](ctx, c, "list regions", "/regions", nil)
}

// GetRegion 按 ID 查询地区行，不存在返回 (nil, nil)
func (c *Client) GetRegion(ctx context.Context, id string) (*codec.RegionRow, error) {
	return getOne[codec.RegionRow](ctx, c, "get region", resourcePath("regions", id))
}

// CreateRegion 新建地区行
func (c *Client) CreateRegion(ctx context.Context, row *codec.RegionRow) (*codec.RegionRow, error) {
	return create(ctx, c, "create region", "/regions", row)
}

// UpdateRegion 整行覆盖更新
func (c *Client) UpdateRegion(ctx context.Context, id string, row *codec.RegionRow) (*codec.RegionRow, error) {
	return update(ctx, c, "update region", resourcePath("regions", id), row)
}

// DeleteRegion 删除地区行，返回是否确有删除
func (c *Client) DeleteRegion(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete region", resourcePath("regions", id))
}
