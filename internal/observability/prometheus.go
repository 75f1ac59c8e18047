package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Prometheus struct {
	cartOps       *prometheus.CounterVec
	cartAttempts  *prometheus.HistogramVec
	cartDuration  *prometheus.HistogramVec
	unwinds       prometheus.Counter
	sessionResets prometheus.Counter
	shopCalls     *prometheus.HistogramVec
	httpRequests  *prometheus.HistogramVec
	catalogLookup *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Logical cart operations by outcome.",
		}, []string{"op", "ok"}),
		cartAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cart_operation_attempts",
			Help:    "Shop API attempts per logical cart operation.",
			Buckets: []float64{1, 2, 3},
		}, []string{"op"}),
		cartDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cart_operation_duration_ms",
			Help:    "Wall time of a logical cart operation including recovery.",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		}, []string{"op"}),
		unwinds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_unwinds_total",
			Help: "Transitions back to AddingItems issued during recovery.",
		}),
		sessionResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_session_resets_total",
			Help: "Session tokens discarded during recovery.",
		}),
		shopCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_api_call_duration_ms",
			Help:    "Shop API round trips.",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		}, []string{"operation", "ok"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Storefront HTTP API requests.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"method", "route", "status"}),
		catalogLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(p.cartOps, p.cartAttempts, p.cartDuration, p.unwinds,
		p.sessionResets, p.shopCalls, p.httpRequests, p.catalogLookup)
	return p
}

func (p *Prometheus) ObserveCartOp(op string, attempts int, ok bool, durMs float64) {
	p.cartOps.WithLabelValues(op, strconv.FormatBool(ok)).Inc()
	p.cartAttempts.WithLabelValues(op).Observe(float64(attempts))
	p.cartDuration.WithLabelValues(op).Observe(durMs)
}

func (p *Prometheus) IncUnwind()       { p.unwinds.Inc() }
func (p *Prometheus) IncSessionReset() { p.sessionResets.Inc() }

func (p *Prometheus) ObserveShopAPI(operation string, ok bool, durMs float64) {
	p.shopCalls.WithLabelValues(operation, strconv.FormatBool(ok)).Observe(durMs)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(durMs)
}

func (p *Prometheus) IncCatalogHit()  { p.catalogLookup.WithLabelValues("hit").Inc() }
func (p *Prometheus) IncCatalogMiss() { p.catalogLookup.WithLabelValues("miss").Inc() }
