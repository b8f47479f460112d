package observability

import "sync"

type observe struct {
	Kind    string
	Key     string
	Outcome string
	Method  string
	Route   string
	Status  int
	Dur     float64
	Extra   float64
}

// Inmem keeps the last max observations and cache hit/miss totals.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
		refreshes            map[string]int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveRefresh(key, outcome string, fetchMs float64) {
	m.push(&observe{Kind: "refresh", Key: key, Outcome: outcome, Dur: fetchMs})
	m.mu.Lock()
	if m.totals.refreshes == nil {
		m.totals.refreshes = make(map[string]int)
	}
	m.totals.refreshes[key+"/"+outcome]++
	m.mu.Unlock()
}

func (m *Inmem) ObserveLookup(source string, indexMs, scanMs float64) {
	m.push(&observe{Kind: "lookup", Outcome: source, Dur: indexMs, Extra: scanMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, Dur: durMs})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// Refreshes returns how many refreshes of key ended with outcome.
func (m *Inmem) Refreshes(key, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.refreshes[key+"/"+outcome]
}
