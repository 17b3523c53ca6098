package pricing

import (
	"github.com/renoquote/backend/internal/model"
	"github.com/shopspring/decimal"
)

// QuantityMap maps a line code to a quantity and remembers insertion order.
// Entries with a quantity <= 0 are never stored.
type QuantityMap struct {
	order []string
	qty   map[string]decimal.Decimal
}

// NewQuantityMap returns an empty map.
func NewQuantityMap() *QuantityMap {
	return &QuantityMap{qty: make(map[string]decimal.Decimal)}
}

// Set stores q for code. A non-positive q removes the code.
func (m *QuantityMap) Set(code string, q decimal.Decimal) {
	if !q.IsPositive() {
		m.Delete(code)
		return
	}
	if _, ok := m.qty[code]; !ok {
		m.order = append(m.order, code)
	}
	m.qty[code] = q
}

// SetInt is Set for whole quantities.
func (m *QuantityMap) SetInt(code string, q int) {
	m.Set(code, decimal.NewFromInt(int64(q)))
}

// Delete removes code from the map.
func (m *QuantityMap) Delete(code string) {
	if _, ok := m.qty[code]; !ok {
		return
	}
	delete(m.qty, code)
	for i, c := range m.order {
		if c == code {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the quantity for code.
func (m *QuantityMap) Get(code string) (decimal.Decimal, bool) {
	q, ok := m.qty[code]
	return q, ok
}

// Has reports whether code has a quantity.
func (m *QuantityMap) Has(code string) bool {
	_, ok := m.qty[code]
	return ok
}

// Len returns the number of entries.
func (m *QuantityMap) Len() int {
	return len(m.order)
}

// Codes returns the codes in insertion order.
func (m *QuantityMap) Codes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns the code/quantity pairs in insertion order.
func (m *QuantityMap) Entries() []model.QuantityEntry {
	out := make([]model.QuantityEntry, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, model.QuantityEntry{Code: code, Quantity: m.qty[code]})
	}
	return out
}
