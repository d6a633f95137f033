package gateway

import (
	"context"

	"atlas/internal/codec"
)

// ListTopics 列出全部文章行
func (c *Client) ListTopics(ctx context.Context) ([]codec.TopicRow, error) {
	return getList[codec.TopicRow](ctx, c, "list topics", "/topics", nil)
}

// GetTopic 按 ID 查询文章行，不存在返回 (nil, nil)
func (c *Client) GetTopic(ctx context.Context, id string) (*codec.TopicRow, error) {
	return getOne[codec.TopicRow](ctx, c, "get topic", resourcePath("topics", id))
}

// TopicsByAuthor 按作者过滤
func (c *Client) TopicsByAuthor(ctx context.Context, authorID string) ([]codec.TopicRow, error) {
	return getList[codec.TopicRow](ctx, c, "topics by author", "/topics", map[string]string{"author_id": authorID})
}

// TopicsByRegion 按地区过滤
func (c *Client) TopicsByRegion(ctx context.Context, regionID string) ([]codec.TopicRow, error) {
	return getList[codec.TopicRow](ctx, c, "topics by region", "/topics", map[string]string{"region_id": regionID})
}

// SearchTopics 关键词全文检索
func (c *Client) SearchTopics(ctx context.Context, keyword string) ([]codec.TopicRow, error) {
	return getList[codec.TopicRow](ctx, c, "search topics", "/topics", map[string]string{"search": keyword})
}

// CreateTopic 新建文章行
func (c *Client) CreateTopic(ctx context.Context, row *codec.TopicRow) (*codec.TopicRow, error) {
	return create(ctx, c, "create topic", "/topics", row)
}

// UpdateTopic 整行覆盖更新
func (c *Client) UpdateTopic(ctx context.Context, id string, row *codec.TopicRow) (*codec.TopicRow, error) {
	return update(ctx, c, "update topic", resourcePath("topics", id), row)
}

// DeleteTopic 删除文章行，返回是否确有删除
func (c *Client) DeleteTopic(ctx context.Context, id string) (bool, error) {
	return remove(ctx, c, "delete topic", resourcePath("topics", id))
}

// ListTopicVersions 列出文章版本记录
func (c *Client) ListTopicVersions(ctx context.Context, topicID string) ([]codec.TopicVersionRow, error) {
	return getList[codec.TopicVersionRow](ctx, c, "list topic versions", resourcePath("topics", topicID)+"/versions", nil)
}

// CreateTopicVersion 追加文章版本记录
func (c *Client) CreateTopicVersion(ctx context.Context, topicID string, row *codec.TopicVersionRow) (*codec.TopicVersionRow, error) {
	return create(ctx, c, "create topic version", resourcePath("topics", topicID)+"/versions", row)
}
