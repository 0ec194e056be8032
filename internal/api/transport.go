package api

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single GET. Implementations must not retry.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}

type FastHTTPTransport struct {
	client  *fasthttp.Client
	headers map[string]string
}

func NewFastHTTPTransport(headers map[string]string) *FastHTTPTransport {
	return &FastHTTPTransport{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		headers: headers,
	}
}

func (t *FastHTTPTransport) Get(ctx context.Context, url string) (*Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := t.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := t.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	// resp is released on return
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	return &Response{StatusCode: resp.StatusCode(), Body: body}, nil
}
