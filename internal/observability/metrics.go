package observability

type Metrics interface {
	ObserveRefresh(key, outcome string, fetchMs float64)
	ObserveLookup(source string, indexMs, scanMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveRefresh(string, string, float64)   {}
func (Noop) ObserveLookup(string, float64, float64)   {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
