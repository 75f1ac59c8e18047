package observability

// Metrics receives measurements from the cart, catalog, Shop API transport
// and HTTP layer.
type Metrics interface {
	ObserveCartOp(op string, attempts int, ok bool, durMs float64)
	IncUnwind()
	IncSessionReset()
	ObserveShopAPI(operation string, ok bool, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCatalogHit()
	IncCatalogMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveCartOp(string, int, bool, float64) {}
func (Noop) IncUnwind() {}
func (Noop) IncSessionReset() {}
func (Noop) ObserveShopAPI(string, bool, float64) {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncCatalogHit() {}
func (Noop) IncCatalogMiss() {}

// Multi fans every observation out to all of ms.
type Multi []Metrics

func (m Multi) ObserveCartOp(op string, attempts int, ok bool, durMs float64) {
	for _, x := range m {
		x.ObserveCartOp(op, attempts, ok, durMs)
	}
}
func (m Multi) IncUnwind() {
	for _, x := range m {
		x.IncUnwind()
	}
}
func (m Multi) IncSessionReset() {
	for _, x := range m {
		x.IncSessionReset()
	}
}
func (m Multi) ObserveShopAPI(operation string, ok bool, durMs float64) {
	for _, x := range m {
		x.ObserveShopAPI(operation, ok, durMs)
	}
}
func (m Multi) ObserveHTTP(method, route string, status int, durMs float64) {
	for _, x := range m {
		x.ObserveHTTP(method, route, status, durMs)
	}
}
func (m Multi) IncCatalogHit() {
	for _, x := range m {
		x.IncCatalogHit()
	}
}
func (m Multi) IncCatalogMiss() {
	for _, x := range m {
		x.IncCatalogMiss()
	}
}
