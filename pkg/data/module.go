// Package data provides a generic, order-preserving configuration tree.
// Entities convert themselves to and from this representation so they can be
// introspected or round-tripped without referencing host types.
package data

// Value is a single node of the tree: a scalar, an ordered mapping, or a
// sequence.
type Value interface {
	value()
}

type String string

type Number float64

type Bool bool

func (String) value()   {}
func (Number) value()   {}
func (Bool) value()     {}
func (*Mapping) value() {}
func (Sequence) value() {}

type Sequence []Value

type Pair struct {
	Key   string
	Value Value
}

// Mapping is a string-keyed mapping that preserves insertion order.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

func NewMapping() *Mapping {
	return &Mapping{
		index: make(map[string]int),
	}
}

// Set stores a value under key. Setting an existing key replaces its value
// but keeps its original position.
func (m *Mapping) Set(key string, value Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if at, ok := m.index[key]; ok {
		m.pairs[at].Value = value
		return
	}

	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

func (m *Mapping) Get(key string) (Value, bool) {
	at, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.pairs[at].Value, true
}

// Pairs returns the mapping's entries in insertion order. The returned slice
// is shared; callers must not mutate it.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

func (m *Mapping) Len() int {
	return len(m.pairs)
}

func (m *Mapping) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	if !ok {
		return "", false
	}
	return string(s), true
}

func (m *Mapping) GetNumber(key string) (float64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

func (m *Mapping) GetSequence(key string) (Sequence, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.(Sequence)
	if !ok {
		return nil, false
	}
	return s, true
}

// Strings collects the String elements of a sequence, skipping nodes of any
// other kind.
func (s Sequence) Strings() []string {
	result := make([]string, 0, len(s))
	for _, v := range s {
		if str, ok := v.(String); ok {
			result = append(result, string(str))
		}
	}
	return result
}
