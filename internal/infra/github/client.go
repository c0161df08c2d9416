/*
 * @Description: GitHub Gist API 客户端
 * @Author: 安知鱼
 * @Date: 2026-02-25 18:09:59
 * @LastEditTime: 2026-02-28 21:02:42
 * @LastEditors: 安知鱼
 */

// Package github 实现基于 GitHub REST API 的 gist 数据源。
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/repository"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "anheyu-gistblog"
	acceptHeader     = "application/vnd.github.v3+json"
	// 错误响应体最多保留的字节数
	maxErrorBody = 512
)

// Client 是 repository.GistSource 的 GitHub 实现
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ repository.GistSource = (*Client)(nil)

// Option 配置 Client
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent 设置 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimit 限制每秒发往 GitHub 的请求数，rps 不为正数时不限制
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// NewClient 创建客户端，token 为空时匿名访问
func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListByUser 请求 GET /users/{user}/gists?per_page=&page=
func (c *Client) ListByUser(ctx context.Context, user string, page, perPage int) ([]model.GistRecord, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))
	endpoint := fmt.Sprintf("%s/users/%s/gists?%s", c.baseURL, url.PathEscape(user), query.Encode())

	var gists []model.GistRecord
	if err := c.getJSON(ctx, endpoint, &gists); err != nil {
		// 用户不存在属于配置错误，而不是某篇文章不存在
		if errors.Is(err, constant.ErrNotFound) {
			err = &constant.SourceError{StatusCode: http.StatusNotFound, Message: "user not found"}
		}
		return nil, fmt.Errorf("获取用户 %s 的 gist 列表第 %d 页失败: %w", user, page, err)
	}
	return gists, nil
}

// GetByID 请求 GET /gists/{id}
func (c *Client) GetByID(ctx context.Context, id string) (*model.GistRecord, error) {
	endpoint := fmt.Sprintf("%s/gists/%s", c.baseURL, url.PathEscape(id))

	var gist model.GistRecord
	if err := c.getJSON(ctx, endpoint, &gist); err != nil {
		return nil, fmt.Errorf("获取 gist %s 失败: %w", id, err)
	}
	return &gist, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", constant.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return constant.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: 解析响应失败: %w", constant.ErrSourceUnavailable, err)
	}
	return nil
}

func handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr struct {
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		message = apiErr.Message
	}

	return &constant.SourceError{StatusCode: resp.StatusCode, Message: message}
}
