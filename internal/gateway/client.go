// Package gateway 是远端关系库的 REST 访问层。
// 每类实体一组 CRUD 操作，JSON 请求/响应体，非 2xx 一律视为 TransportError。
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options 客户端参数
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// Client 远端存储 REST 客户端
type Client struct {
	http *resty.Client
}

// New 创建客户端
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 500 * time.Millisecond
	}
	if opts.RetryMaxWait <= 0 {
		opts.RetryMaxWait = 3 * time.Second
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryMaxWait).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: client}
}

// getList GET 集合资源
func getList[T any](ctx context.Context, c *Client, op, path string, query map[string]string) ([]T, error) {
	var out []T
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return out, nil
}

// getOne GET 单个资源，404 返回 (nil, nil)
func getOne[T any](ctx context.Context, c *Client, op, path string) (*T, error) {
	var out T
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return &out, nil
}

// create POST 资源，返回远端写入后的行
func create[T any](ctx context.Context, c *Client, op, path string, body *T) (*T, error) {
	var out T
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Post(path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return &out, nil
}

// update PUT 资源
func update[T any](ctx context.Context, c *Client, op, path string, body *T) (*T, error) {
	var out T
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Put(path)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{Op: op, Status: resp.StatusCode()}
	}
	return &out, nil
}

// remove DELETE 资源
// 204/200 表示确实删除了一行；404 表示没有可删的行，不算错误
func remove(ctx context.Context, c *Client, op, path string) (bool, error) {
	resp, err := c.http.R().SetContext(ctx).Delete(path)
	if err != nil {
		return false, &TransportError{Op: op, Err: err}
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return false, nil
	case resp.IsSuccess():
		return true, nil
	default:
		return false, &TransportError{Op: op, Status: resp.StatusCode()}
	}
}

func resourcePath(collection, id string) string {
	return fmt.Sprintf("/%s/%s", collection, id)
}
