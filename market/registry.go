package market

import (
	"sort"
	"sync"
)

// Registry 股票目录，按规范化代码索引，可被配置热更新整体替换。
type Registry struct {
	mu     sync.RWMutex
	stocks map[string]*Stock
}

func NewRegistry(stocks ...*Stock) (*Registry, error) {
	r := &Registry{stocks: make(map[string]*Stock, len(stocks))}
	if err := r.Replace(stocks); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds stock; a symbol already present is rejected.
func (r *Registry) Register(stock *Stock) error {
	if stock == nil {
		return invalidArgument("register stock", "stock is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stocks == nil {
		r.stocks = make(map[string]*Stock)
	}
	if _, ok := r.stocks[stock.Symbol()]; ok {
		return invalidArgument("register stock", "%s already registered", stock.Symbol())
	}
	r.stocks[stock.Symbol()] = stock
	return nil
}

// Get 大小写不敏感查找。
func (r *Registry) Get(symbol string) (*Stock, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stocks[NormalizeSymbol(symbol)]
	return s, ok
}

// Replace 原子替换整个目录；校验失败时保持原状。
func (r *Registry) Replace(stocks []*Stock) error {
	next := make(map[string]*Stock, len(stocks))
	for _, s := range stocks {
		if s == nil {
			return invalidArgument("replace stocks", "nil stock")
		}
		if _, dup := next[s.Symbol()]; dup {
			return invalidArgument("replace stocks", "%s listed twice", s.Symbol())
		}
		next[s.Symbol()] = s
	}
	r.mu.Lock()
	r.stocks = next
	r.mu.Unlock()
	return nil
}

func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.stocks))
	for sym := range r.stocks {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stocks)
}
