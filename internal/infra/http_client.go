package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/takatori/sbekms/internal/errors"
)

type HttpClient struct {
	Client *http.Client
}

type BasicAuth struct {
	Username string
	Password string
}

type Request struct {
	Url     string
	Headers map[string]string
	Auth    *BasicAuth
	IsTrace bool
}

type PostRequest struct {
	Request
	Entity any
}

// RawPostRequest posts an opaque body with an explicit content type,
// for endpoints that do not speak JSON (SPARQL query/update).
type RawPostRequest struct {
	Request
	Body        []byte
	ContentType string
}

func NewHttpClient() *HttpClient {

	dt := http.DefaultTransport
	transport := dt.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = time.Duration(30) * time.Second
	transport.MaxIdleConns = transport.MaxIdleConnsPerHost * 2
	return &HttpClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(30) * time.Second,
		},
	}
}

func (c *HttpClient) Get(ctx context.Context, req Request, expected any) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Url, nil)
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrInternal,
			failure.Field(failure.Message("failed to create request")),
			failure.Context{
				"url": req.Url,
			},
		)
	}
	applyHeaders(r, req)

	res, err := c.Client.Do(r)
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrUpstream,
			failure.Field(failure.Message("failed to send request")),
			failure.Context{
				"url": req.Url,
			},
		)
	}
	defer res.Body.Close()

	if !successStatus(res.StatusCode) {
		return failure.New(
			errors.ErrUpstream,
			failure.Field(failure.Message("unexpected status code")),
			failure.Context{
				"url":  req.Url,
				"code": fmt.Sprintf("%d", res.StatusCode),
			},
		)
	}

	return decodeBody(res, req.Url, expected)
}

func (c *HttpClient) Post(ctx context.Context, req PostRequest, expected any) error {
	encoded, err := json.Marshal(req.Entity)
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrInternal,
			failure.Field(failure.Message("failed to encode request entity")),
			failure.Context{
				"url":    req.Url,
				"entity": fmt.Sprintf("%+v", req.Entity),
			},
		)
	}

	return c.PostRaw(ctx, RawPostRequest{
		Request:     req.Request,
		Body:        encoded,
		ContentType: "application/json",
	}, expected)
}

func (c *HttpClient) PostRaw(ctx context.Context, req RawPostRequest, expected any) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Url, bytes.NewBuffer(req.Body))
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrInternal,
			failure.Field(failure.Message("failed to create request")),
			failure.Context{
				"url": req.Url,
				"req": string(req.Body),
			},
		)
	}
	applyHeaders(r, req.Request)
	r.Header.Set("Content-Type", req.ContentType)

	res, err := c.Client.Do(r)
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrUpstream,
			failure.Field(failure.Message("failed to send request")),
			failure.Context{
				"url": req.Url,
				"req": string(req.Body),
			},
		)
	}
	defer res.Body.Close()

	if !successStatus(res.StatusCode) {
		return failure.New(
			errors.ErrUpstream,
			failure.Field(failure.Message("unexpected status code")),
			failure.Context{
				"url":  req.Url,
				"req":  string(req.Body),
				"code": fmt.Sprintf("%d", res.StatusCode),
			},
		)
	}

	return decodeBody(res, req.Url, expected)
}

func applyHeaders(r *http.Request, req Request) {
	for k, v := range req.Headers {
		if v != "" {
			r.Header.Set(k, v)
		}
	}
	if req.Auth != nil && req.Auth.Username != "" {
		r.SetBasicAuth(req.Auth.Username, req.Auth.Password)
	}
}

// decodeBody unmarshals a JSON response into expected. Callers pass nil for
// endpoints that answer with an empty body (e.g. SPARQL update's 204).
func decodeBody(res *http.Response, url string, expected any) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return failure.Translate(
			err,
			errors.ErrUpstream,
			failure.Field(failure.Message("failed to read response body")),
			failure.Context{
				"url": url,
			},
		)
	}

	if expected == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, expected); err != nil {
		return failure.Translate(
			err,
			errors.ErrUpstream,
			failure.Field(failure.Message("failed to decode response body")),
			failure.Context{
				"url": url,
			},
		)
	}

	return nil
}

func successStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated || code == http.StatusNoContent
}
