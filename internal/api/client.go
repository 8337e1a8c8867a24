// Package api — REST-клиент бэкенда платформы.
//
// Каждый ответ читается как конверт {code, message, data}: успех
// определяется только полем code, HTTP-статус транспорта не решает.
// Ошибки классифицируются пакетом internal/errors:
//   - сбой сети или чтения тела — ErrTransport;
//   - тело не JSON-конверт — ErrDecode;
//   - code != 200 — *DomainError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// Максимальный размер тела ответа, который клиент готов прочитать.
const maxBodyBytes = 8 << 20

// Options — параметры клиента.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Tokens    interceptors.TokenSource
	Logger    *slog.Logger
	Metrics   *interceptors.Metrics
	// Transport — нижний транспорт цепочки (nil — http.DefaultTransport).
	Transport http.RoundTripper
}

// Client — REST-клиент; безопасен для конкурентного использования.
type Client struct {
	base *url.URL
	http *http.Client
}

// New собирает клиент с цепочкой интерсепторов:
// metadata -> timeout -> logging -> metrics.
func New(opts Options) (*Client, error) {
	const op = "internal/api/New"

	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, base.Scheme)
	}

	rt := interceptors.Chain(opts.Transport,
		interceptors.ClientWithMetadata(opts.UserAgent, opts.Tokens),
		interceptors.ClientWithTimeout(opts.Timeout),
		interceptors.ClientLogging(opts.Logger),
		interceptors.ClientMetrics(opts.Metrics),
	)

	return &Client{
		base: base,
		http: &http.Client{Transport: rt},
	}, nil
}

// endpoint строит абсолютный URL для пути под /api.
func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + "/api" + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// call выполняет запрос и раскладывает data конверта в out (out == nil — data игнорируется).
func (c *Client) call(ctx context.Context, method, path string, q url.Values, body any, out any) error {
	var (
		rdr         io.Reader
		contentType string
	)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
		contentType = "application/json"
	}

	return c.send(ctx, method, path, q, rdr, contentType, out)
}

func (c *Client) send(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apierrors.ErrTransport, unwrapURL(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", apierrors.ErrTransport, err)
	}

	return decode(resp.StatusCode, raw, out)
}

// decode проверяет конверт и раскладывает data.
func decode(status int, raw []byte, out any) error {
	var env models.Envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= http.StatusBadRequest {
			// Прокси или сервер отдал не-JSON страницу ошибки.
			return &apierrors.DomainError{Status: status, Code: status, Message: http.StatusText(status)}
		}
		return fmt.Errorf("%w: %w", apierrors.ErrDecode, err)
	}

	// Ответы валидации фреймворка бэкенда приходят без поля code.
	if env.Code == 0 && status != http.StatusOK {
		env.Code = status
	}
	if !env.OK() {
		return &apierrors.DomainError{Status: status, Code: env.Code, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: data: %w", apierrors.ErrDecode, err)
	}

	return nil
}

func unwrapURL(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}

	return err
}

func get[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	var out T
	err := c.call(ctx, http.MethodGet, path, q, nil, &out)
	return out, err
}

func post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.call(ctx, http.MethodPost, path, nil, body, &out)
	return out, err
}

func put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.call(ctx, http.MethodPut, path, nil, body, &out)
	return out, err
}

func del(ctx context.Context, c *Client, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

func postNoData(ctx context.Context, c *Client, path string, body any) error {
	return c.call(ctx, http.MethodPost, path, nil, body, nil)
}

func putNoData(ctx context.Context, c *Client, path string, body any) error {
	return c.call(ctx, http.MethodPut, path, nil, body, nil)
}
