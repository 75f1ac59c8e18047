package cart

//go:generate mockgen -source=client.go -destination=client_mock_test.go -package=cart
//go:generate mockgen -source=../domain/ports.go -destination=store_mock_test.go -package=cart

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/observability"
)

// OrderAPI is the Shop API surface the cart drives. Calls never return Go
// errors: transport problems arrive as NETWORK_ERROR failures.
type OrderAPI interface {
	ActiveOrder(ctx context.Context, token string) domain.Reply
	AddItem(ctx context.Context, token, variantID string, quantity int, ann *domain.Annotations) domain.Reply
	AdjustLine(ctx context.Context, token, lineID string, quantity int) domain.Reply
	RemoveLine(ctx context.Context, token, lineID string) domain.Reply
	TransitionToAddingItems(ctx context.Context, token string) domain.Reply
	UploadPetPhotos(ctx context.Context, token string, photos []domain.Photo) ([]domain.UploadedAsset, string, error)
}

type Publisher interface {
	Publish(ctx context.Context, ev domain.CartEvent)
}

// Client mirrors the shopper's active order and carries the session token
// across calls. One Client serves one shopper session.
type Client struct {
	api     OrderAPI
	store   domain.TokenStore
	events  Publisher
	logger  *zap.Logger
	metrics observability.Metrics
	now     func() time.Time

	mu    sync.Mutex
	token string
	order *domain.Order

	inflight atomic.Int32
	detached atomic.Bool
}

func New(api OrderAPI, store domain.TokenStore, events Publisher, logger *zap.Logger, metrics observability.Metrics) *Client {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Client{
		api:     api,
		store:   store,
		events:  events,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Restore loads the persisted token. Call once before the first operation.
func (c *Client) Restore(ctx context.Context) {
	token, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("Could not restore cart session", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.logger.Debug("Cart session restored", zap.Bool("has_token", token != ""))
}

// Order returns a copy of the mirror; nil means no active order.
func (c *Client) Order() *domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Clone()
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) HasSession() bool { return c.Token() != "" }

// Loading reports whether a mutation is in flight.
func (c *Client) Loading() bool { return c.inflight.Load() > 0 }

// Detach stops the client from applying responses that arrive afterwards.
func (c *Client) Detach() { c.detached.Store(true) }

// Refresh replaces the mirror with the server's active order. On failure the
// mirror is left as it was.
func (c *Client) Refresh(ctx context.Context) error {
	start := time.Now()
	reply := c.api.ActiveOrder(ctx, c.Token())
	c.adoptToken(ctx, reply.Token)

	res := reply.Result
	if res.OK() {
		c.setOrder(res.Order)
	} else {
		c.logger.Error("Failed to fetch active order",
			zap.String("error_code", res.Err.Code),
			zap.String("message", res.Err.Message),
		)
	}

	c.metrics.ObserveCartOp("refresh", 1, res.OK(), observability.ToMs(time.Since(start)))
	c.publish(ctx, domain.CartEvent{Kind: domain.EventCartRefreshed}, outcome{result: res, attempts: 1})

	if !res.OK() {
		return res.Err
	}
	return nil
}

func (c *Client) AddLine(ctx context.Context, variantID string, quantity int, ann *domain.Annotations) (*domain.Order, error) {
	if quantity < 1 {
		return nil, &domain.ErrorResult{Code: domain.CodeInvalidQuantity, Message: "quantity must be at least 1"}
	}
	out := c.mutate(ctx, "add_line", func(ctx context.Context, token string) domain.Reply {
		return c.api.AddItem(ctx, token, variantID, quantity, ann)
	})
	c.publish(ctx, domain.CartEvent{Kind: domain.EventLineAdded, VariantID: variantID, Quantity: quantity}, out)
	return out.order()
}

func (c *Client) AdjustQuantity(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
	out := c.mutate(ctx, "adjust_line", func(ctx context.Context, token string) domain.Reply {
		return c.api.AdjustLine(ctx, token, lineID, quantity)
	})
	c.publish(ctx, domain.CartEvent{Kind: domain.EventLineAdjusted, LineID: lineID, Quantity: quantity}, out)
	return out.order()
}

func (c *Client) RemoveLine(ctx context.Context, lineID string) (*domain.Order, error) {
	out := c.mutate(ctx, "remove_line", func(ctx context.Context, token string) domain.Reply {
		return c.api.RemoveLine(ctx, token, lineID)
	})
	c.publish(ctx, domain.CartEvent{Kind: domain.EventLineRemoved, LineID: lineID}, out)
	return out.order()
}

// UploadPetPhotos uploads under the current session so the assets can be
// attached to a line afterwards.
func (c *Client) UploadPetPhotos(ctx context.Context, photos []domain.Photo) ([]domain.UploadedAsset, error) {
	assets, token, err := c.api.UploadPetPhotos(ctx, c.Token(), photos)
	c.adoptToken(ctx, token)
	if err != nil {
		c.logger.Warn("Pet photo upload failed", zap.Int("photos", len(photos)), zap.Error(err))
		return nil, err
	}
	return assets, nil
}

func (c *Client) mutate(ctx context.Context, op string, m mutation) outcome {
	c.inflight.Add(1)
	defer c.inflight.Add(-1)

	start := time.Now()
	out := c.runWithRecovery(ctx, m)
	c.metrics.ObserveCartOp(op, out.attempts, out.result.OK(), observability.ToMs(time.Since(start)))

	if !out.result.OK() {
		c.logger.Error("Cart operation failed",
			zap.String("op", op),
			zap.Int("attempts", out.attempts),
			zap.String("error_code", out.result.Err.Code),
			zap.String("message", out.result.Err.Message),
		)
	} else {
		c.logger.Info("Cart operation applied",
			zap.String("op", op),
			zap.Int("attempts", out.attempts),
			zap.Bool("unwound", out.unwound),
			zap.Bool("session_reset", out.sessionReset),
		)
	}
	return out
}

func (c *Client) publish(ctx context.Context, ev domain.CartEvent, out outcome) {
	if c.events == nil {
		return
	}
	ev.Attempts = out.attempts
	ev.Unwound = out.unwound
	ev.SessionReset = out.sessionReset
	ev.OK = out.result.OK()
	if out.result.OK() {
		if o := out.result.Order; o != nil {
			ev.OrderCode = o.Code
		}
	} else {
		ev.ErrorCode = out.result.Err.Code
		if o := c.Order(); o != nil {
			ev.OrderCode = o.Code
		}
	}
	ev.At = c.now().UTC()
	c.events.Publish(ctx, ev)
}

// adoptToken takes over a freshly issued token and persists it. A failed
// write is logged; the in-memory token stays authoritative.
func (c *Client) adoptToken(ctx context.Context, token string) {
	if token == "" || c.detached.Load() {
		return
	}
	c.mu.Lock()
	changed := c.token != token
	c.token = token
	c.mu.Unlock()
	if !changed {
		return
	}
	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Warn("Could not persist session token", zap.Error(err))
	}
}

func (c *Client) setOrder(o *domain.Order) {
	if c.detached.Load() {
		return
	}
	c.mu.Lock()
	c.order = o.Clone()
	c.mu.Unlock()
}

// resetSession drops the token so the next call starts a new anonymous session.
func (c *Client) resetSession(ctx context.Context) {
	c.metrics.IncSessionReset()
	if c.detached.Load() {
		return
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("Could not clear persisted session token", zap.Error(err))
	}
}
