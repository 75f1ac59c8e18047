package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/domain"
)

// mutation is one line operation against the Shop API under token.
type mutation func(ctx context.Context, token string) domain.Reply

type outcome struct {
	result       domain.Result
	attempts     int
	unwound      bool
	sessionReset bool
}

func (o outcome) order() (*domain.Order, error) {
	if !o.result.OK() {
		return nil, o.result.Err
	}
	return o.result.Order.Clone(), nil
}

// runWithRecovery runs m at most three times. A "not modifiable" failure
// first moves the order back to AddingItems and retries; anything still
// failing after that drops the session and retries once with no token.
// A network failure ends the sequence wherever it happens, so a network
// failure on the retry after the unwind returns without resetting the session.
//
// The unwind is unconditional. An order whose payment is genuinely in flight
// in another tab gets moved back to AddingItems as well.
func (c *Client) runWithRecovery(ctx context.Context, m mutation) outcome {
	var out outcome

	res := c.attempt(ctx, m, &out)
	if done(res) {
		out.result = res
		return out
	}

	if res.Err.NotModifiable() {
		c.unwind(ctx)
		out.unwound = true

		res = c.attempt(ctx, m, &out)
		if done(res) {
			out.result = res
			return out
		}
	}

	c.logger.Warn("Resetting cart session after failed retry",
		zap.String("error_code", res.Err.Code),
		zap.Int("attempts", out.attempts),
	)
	c.resetSession(ctx)
	out.sessionReset = true

	out.result = c.attempt(ctx, m, &out)
	return out
}

func done(res domain.Result) bool {
	return res.OK() || res.Err.Network()
}

func (c *Client) attempt(ctx context.Context, m mutation, out *outcome) domain.Result {
	out.attempts++
	reply := m(ctx, c.Token())
	c.adoptToken(ctx, reply.Token)
	if reply.Result.OK() {
		c.setOrder(reply.Result.Order)
	}
	return reply.Result
}

// unwind asks the server to move the order back to AddingItems. Its snapshot
// is not applied to the mirror; only the retried mutation's is.
func (c *Client) unwind(ctx context.Context) {
	c.metrics.IncUnwind()
	reply := c.api.TransitionToAddingItems(ctx, c.Token())
	c.adoptToken(ctx, reply.Token)
	if !reply.Result.OK() {
		c.logger.Warn("Could not move order back to AddingItems",
			zap.String("error_code", reply.Result.Err.Code),
			zap.String("message", reply.Result.Err.Message),
		)
	}
}
