package scraper

import (
	"bytes"
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

	"BoatraceAPI/internal/adapter"
	"BoatraceAPI/internal/config"
	"BoatraceAPI/internal/interfaces"
	"BoatraceAPI/internal/model"
	"BoatraceAPI/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// 响应体上限，防止异常上游撑爆内存
const maxBodyBytes = 8 << 20

func init() {
	adapter.Register(config.DriverScraper, NewScraperAdapter)
}

// Adapter 通过 HTTP 调用外部爬虫服务
// 接口形如 {base_url}/{kind}/{YYYY-MM-DD}/{stadium}/{race} 与 {base_url}/stadiums/{YYYY-MM-DD}
type Adapter struct {
	cfg        *config.ScraperConfig
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewScraperAdapter(cfg *config.Config, logger *logrus.Logger) (interfaces.RaceDataSource, error) {
	u, err := url.Parse(cfg.Scraper.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("爬虫服务地址不合法: %q", cfg.Scraper.BaseURL)
	}
	sc := cfg.Scraper
	return &Adapter{
		cfg:        &sc,
		baseURL:    strings.TrimRight(cfg.Scraper.BaseURL, "/"),
		httpClient: httpclient.NewHTTPClient(&sc, logger),
		logger:     logger,
	}, nil
}

// GetName ========== 实现RaceDataSource接口 ==========
func (a *Adapter) GetName() string {
	return config.DriverScraper
}

func (a *Adapter) FetchRaceData(ctx context.Context, kind model.RaceDataKind, date model.Date, stadiumID, raceNumber int) (json.RawMessage, error) {
	body, err := a.get(ctx, racePath(kind, date, stadiumID, raceNumber))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s 返回的不是合法JSON", interfaces.ErrUpstream, kind)
	}
	return json.RawMessage(body), nil
}

func (a *Adapter) FetchResults(ctx context.Context, date model.Date, stadiumID, raceNumber int) (model.RawMap, error) {
	body, err := a.get(ctx, racePath(model.KindResults, date, stadiumID, raceNumber))
	if err != nil {
		return nil, err
	}
	var raw model.RawMap
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: 解析结果数据失败: %w", interfaces.ErrUpstream, err)
	}
	return raw, nil
}

func (a *Adapter) FetchStadiums(ctx context.Context, date model.Date) (json.RawMessage, error) {
	body, err := a.get(ctx, "/"+string(model.KindStadiums)+"/"+date.String())
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: stadiums 返回的不是合法JSON", interfaces.ErrUpstream)
	}
	return json.RawMessage(body), nil
}

func racePath(kind model.RaceDataKind, date model.Date, stadiumID, raceNumber int) string {
	return "/" + string(kind) + "/" + date.String() + "/" + strconv.Itoa(stadiumID) + "/" + strconv.Itoa(raceNumber)
}

// statusError 上游返回非 2xx
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("上游返回状态码 %d: %s", e.code, e.body)
}

// retryable 网络错误、5xx 与 429 可重试；其余 4xx 直接失败
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return true
}

// get 带重试的 GET，最终失败统一包装为 interfaces.ErrUpstream
func (a *Adapter) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= a.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			if err := a.backoff(ctx, attempt); err != nil {
				lastErr = err
				break
			}
		}

		body, err := a.doGet(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err

		entry := a.logger.WithFields(logrus.Fields{
			"path":    path,
			"attempt": attempt + 1,
		}).WithError(err)
		if ctx.Err() != nil || !retryable(err) {
			entry.Warn("请求爬虫服务失败，不再重试")
			break
		}
		entry.Warn("请求爬虫服务失败")
	}
	return nil, fmt.Errorf("%w: GET %s: %w", interfaces.ErrUpstream, path, lastErr)
}

func (a *Adapter) backoff(ctx context.Context, attempt int) error {
	d := time.Duration(a.cfg.RetryBackoffMs*attempt) * time.Millisecond
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (a *Adapter) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if a.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := bytes.TrimSpace(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &statusError{code: resp.StatusCode, body: string(snippet)}
	}
	return body, nil
}
