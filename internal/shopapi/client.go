package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/observability"
	"github.com/TemirB/figurine-cart/internal/pkg/circuit"
)

// AuthTokenHeader carries a freshly issued session token on responses.
const AuthTokenHeader = "vendure-auth-token"

const unreachableMessage = "Could not connect to the store API. Please check your connection."

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Breaker interface {
	Allow() error
	Success()
	Failure()
}

var _ Breaker = (*circuit.Breaker)(nil)

type Client struct {
	url     string
	http    Doer
	breaker Breaker
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(url string, httpClient Doer, breaker Breaker, logger *zap.Logger, metrics observability.Metrics) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Client{
		url:     url,
		http:    httpClient,
		breaker: breaker,
		logger:  logger,
		metrics: metrics,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

// payload returns the operation's top-level field, or a failure when the
// response carried GraphQL errors.
func (e *envelope) payload(field string) (json.RawMessage, *domain.ErrorResult) {
	if len(e.Errors) > 0 {
		msg := e.Errors[0].Message
		if msg == "" {
			msg = "Cart operation failed"
		}
		return nil, &domain.ErrorResult{Code: domain.CodeGraphQL, Message: msg}
	}
	raw, ok := e.Data[field]
	if !ok {
		return nil, &domain.ErrorResult{Code: domain.CodeEmptyResult, Message: "response has no " + field}
	}
	return raw, nil
}

// exchange performs one round trip. It never returns a Go error: transport
// problems come back as a NETWORK_ERROR failure so callers see one shape.
func (c *Client) exchange(ctx context.Context, token string, op operation, body io.Reader, contentType string) (*envelope, string, *domain.ErrorResult) {
	start := time.Now()
	env, newToken, fail := c.do(ctx, token, op, body, contentType)
	c.metrics.ObserveShopAPI(op.name, fail == nil, observability.ToMs(time.Since(start)))
	return env, newToken, fail
}

func (c *Client) do(ctx context.Context, token string, op operation, body io.Reader, contentType string) (*envelope, string, *domain.ErrorResult) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.Warn("shop api breaker rejected call",
				zap.String("operation", op.name),
				zap.Error(err),
			)
			return nil, "", networkFailure()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		c.logger.Error("build shop api request", zap.String("operation", op.name), zap.Error(err))
		return nil, "", networkFailure()
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.reportFailure()
		c.logger.Warn("shop api unreachable",
			zap.String("operation", op.name),
			zap.Error(err),
		)
		return nil, "", networkFailure()
	}
	defer resp.Body.Close()

	newToken := strings.TrimSpace(resp.Header.Get(AuthTokenHeader))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.reportFailure()
		c.logger.Warn("undecodable shop api response",
			zap.String("operation", op.name),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, newToken, networkFailure()
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.reportFailure()
	} else if c.breaker != nil {
		c.breaker.Success()
	}
	return &env, newToken, nil
}

func (c *Client) reportFailure() {
	if c.breaker != nil {
		c.breaker.Failure()
	}
}

func networkFailure() *domain.ErrorResult {
	return &domain.ErrorResult{Code: domain.CodeNetwork, Message: unreachableMessage}
}

func (c *Client) query(ctx context.Context, token string, op operation, vars map[string]any) (*envelope, string, *domain.ErrorResult) {
	b, err := json.Marshal(gqlRequest{Query: op.query, Variables: vars})
	if err != nil {
		c.logger.Error("encode shop api request", zap.String("operation", op.name), zap.Error(err))
		return nil, "", &domain.ErrorResult{Code: domain.CodeUnknown, Message: err.Error()}
	}
	return c.exchange(ctx, token, op, bytes.NewReader(b), "application/json")
}

func (c *Client) orderReply(ctx context.Context, token string, op operation, vars map[string]any, allowNull bool) domain.Reply {
	env, newToken, fail := c.query(ctx, token, op, vars)
	if fail != nil {
		return domain.Reply{Token: newToken, Result: domain.Result{Err: fail}}
	}
	raw, fail := env.payload(op.field)
	if fail != nil {
		c.logger.Error("shop api returned errors",
			zap.String("operation", op.name),
			zap.String("message", fail.Message),
		)
		return domain.Reply{Token: newToken, Result: domain.Result{Err: fail}}
	}
	res := decodeOrderResult(raw, allowNull)
	if !res.OK() {
		c.logger.Warn("shop api error result",
			zap.String("operation", op.name),
			zap.String("error_code", res.Err.Code),
			zap.String("message", res.Err.Message),
		)
	}
	return domain.Reply{Token: newToken, Result: res}
}

func (c *Client) ActiveOrder(ctx context.Context, token string) domain.Reply {
	return c.orderReply(ctx, token, opActiveOrder, nil, true)
}

func (c *Client) AddItem(ctx context.Context, token, variantID string, quantity int, ann *domain.Annotations) domain.Reply {
	vars := map[string]any{
		"productVariantId": variantID,
		"quantity":         quantity,
	}
	if !ann.Empty() {
		vars["customFields"] = ann
	}
	return c.orderReply(ctx, token, opAddItem, vars, false)
}

func (c *Client) AdjustLine(ctx context.Context, token, lineID string, quantity int) domain.Reply {
	return c.orderReply(ctx, token, opAdjustLine, map[string]any{
		"orderLineId": lineID,
		"quantity":    quantity,
	}, false)
}

func (c *Client) RemoveLine(ctx context.Context, token, lineID string) domain.Reply {
	return c.orderReply(ctx, token, opRemoveLine, map[string]any{
		"orderLineId": lineID,
	}, false)
}

func (c *Client) TransitionToAddingItems(ctx context.Context, token string) domain.Reply {
	return c.orderReply(ctx, token, opTransitionToAddingItems, nil, false)
}

// orderUnion is the untrusted shape of an Order | ErrorResult payload.
type orderUnion struct {
	domain.Order
	ErrorCode *string `json:"errorCode"`
	Message   string  `json:"message"`
}

func decodeOrderResult(raw json.RawMessage, allowNull bool) domain.Result {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if allowNull {
			return domain.Success(nil)
		}
		return domain.Failure(domain.CodeEmptyResult, "no order returned")
	}
	var u orderUnion
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.Failure(domain.CodeEmptyResult, fmt.Sprintf("malformed order payload: %v", err))
	}
	if u.ErrorCode != nil {
		return domain.Failure(*u.ErrorCode, u.Message)
	}
	if u.ID == "" {
		return domain.Failure(domain.CodeEmptyResult, "payload is neither an order nor an error result")
	}
	o := u.Order
	return domain.Success(&o)
}
