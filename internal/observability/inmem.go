package observability

import "sync"

type observe struct {
	Kind     string
	Name     string
	Status   int
	Attempts int
	OK       bool
	Dur      float64
}

type Totals struct {
	Unwinds       int
	SessionResets int
	CatalogHits   int
	CatalogMisses int
}

// Inmem keeps the last max observations and running totals. It backs the
// debug endpoint and the tests.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals Totals
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		m.last = []*observe{}
		return
	}
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveCartOp(op string, attempts int, ok bool, durMs float64) {
	m.push(&observe{Kind: "cart", Name: op, Attempts: attempts, OK: ok, Dur: durMs})
}

func (m *Inmem) ObserveShopAPI(operation string, ok bool, durMs float64) {
	m.push(&observe{Kind: "shop", Name: operation, OK: ok, Dur: durMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Name: method + " " + route, Status: status, Dur: durMs})
}

func (m *Inmem) IncUnwind() {
	m.mu.Lock()
	m.totals.Unwinds++
	m.mu.Unlock()
}

func (m *Inmem) IncSessionReset() {
	m.mu.Lock()
	m.totals.SessionResets++
	m.mu.Unlock()
}

func (m *Inmem) IncCatalogHit() {
	m.mu.Lock()
	m.totals.CatalogHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCatalogMiss() {
	m.mu.Lock()
	m.totals.CatalogMisses++
	m.mu.Unlock()
}

func (m *Inmem) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// Count returns how many retained observations have the given kind.
func (m *Inmem) Count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.last {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// LastCartOp returns the newest retained cart observation.
func (m *Inmem) LastCartOp() (op string, attempts int, ok bool, found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.last) - 1; i >= 0; i-- {
		if o := m.last[i]; o.Kind == "cart" {
			return o.Name, o.Attempts, o.OK, true
		}
	}
	return "", 0, false, false
}
