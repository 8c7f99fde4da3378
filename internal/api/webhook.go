package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"wrestling-stats/internal/config"
	"wrestling-stats/internal/constants"
)

// WebhookClient relays revalidation events to the frontend's cache hook.
type WebhookClient struct {
	url    string
	client *fasthttp.Client
}

// RevalidationEvent is the body posted to the hook.
type RevalidationEvent struct {
	ID     string          `json:"id"`
	Table  string          `json:"table"`
	Record json.RawMessage `json:"record,omitempty"`
	Tags   []string        `json:"tags"`
	SentAt time.Time       `json:"sentAt"`
}

// WebhookResponse is what the hook answers with. Hooks that reply with an empty body
// leave it zero.
type WebhookResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

func NewWebhookClient(cfg *config.Config) *WebhookClient {
	return &WebhookClient{
		url: cfg.RevalidateWebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Enabled reports whether a hook URL is configured.
func (c *WebhookClient) Enabled() bool {
	return c.url != ""
}

func (c *WebhookClient) Notify(ctx context.Context, event RevalidationEvent) (*WebhookResponse, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return doRequest[WebhookResponse](ctx, c, fasthttp.MethodPost, c.url, body)
}

func doRequest[T any](ctx context.Context, client *WebhookClient, method, url string, body []byte) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	if status := resp.StatusCode(); status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, fmt.Errorf("webhook error: %d", status)
	}

	var result T
	if len(resp.Body()) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
