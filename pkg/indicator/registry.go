package indicator

import (
	"fmt"
	"sync"
)

// Set groups one configured instance of every indicator variant. The
// zero value is useless; start from DefaultSet and override fields.
type Set struct {
	RSI       RSIConfig
	StochRSI  StochRSIConfig
	EMA       EMATripletConfig
	MACD      MACDConfig
	CipherB   CipherBConfig
	Sentiment SentimentConfig
}

// DefaultSet returns every variant with its standard parameters, all
// enabled
func DefaultSet() Set {
	return Set{
		RSI:       DefaultRSIConfig(),
		StochRSI:  DefaultStochRSIConfig(),
		EMA:       DefaultEMATripletConfig(),
		MACD:      DefaultMACDConfig(),
		CipherB:   DefaultCipherBConfig(),
		Sentiment: DefaultSentimentConfig(),
	}
}

// Build constructs the enabled indicators in evaluation order. The order
// is fixed: within one asset indicators run sequentially, and each
// variant is self-sufficient, so only determinism matters here.
func (s Set) Build() ([]Indicator, error) {
	var out []Indicator

	if s.RSI.Enabled {
		ind, err := NewRSI(s.RSI)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	if s.StochRSI.Enabled {
		ind, err := NewStochRSI(s.StochRSI)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	if s.EMA.Enabled {
		ind, err := NewEMATriplet(s.EMA)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	if s.MACD.Enabled {
		ind, err := NewMACD(s.MACD)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	if s.CipherB.Enabled {
		ind, err := NewCipherB(s.CipherB)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	if s.Sentiment.Enabled {
		ind, err := NewSentimentScore(s.Sentiment)
		if err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	return out, nil
}

// Registry manages indicator instances by name
type Registry struct {
	mu         sync.RWMutex
	indicators map[string]Indicator
	order      []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		indicators: make(map[string]Indicator),
	}
}

// Register adds an indicator to the registry, preserving registration
// order
func (r *Registry) Register(ind Indicator) error {
	if ind == nil {
		return fmt.Errorf("indicator cannot be nil")
	}
	name := ind.Name()
	if name == "" {
		return fmt.Errorf("indicator name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; exists {
		return fmt.Errorf("indicator %q already registered", name)
	}
	r.indicators[name] = ind
	r.order = append(r.order, name)
	return nil
}

// Get retrieves an indicator by name
func (r *Registry) Get(name string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, exists := r.indicators[name]
	if !exists {
		return nil, fmt.Errorf("indicator %q not found", name)
	}
	return ind, nil
}

// List returns registered names in registration order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Ordered returns the registered indicators in registration order
func (r *Registry) Ordered() []Indicator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Indicator, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.indicators[name])
	}
	return out
}

// Subset returns the named indicators in registration order; unknown
// names fail
func (r *Registry) Subset(names []string) ([]Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, exists := r.indicators[name]; !exists {
			return nil, fmt.Errorf("indicator %q not found", name)
		}
		want[name] = true
	}

	out := make([]Indicator, 0, len(want))
	for _, name := range r.order {
		if want[name] {
			out = append(out, r.indicators[name])
		}
	}
	return out, nil
}
