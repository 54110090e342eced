package embeds

// Attribute is a single key/value pair destined for an HTML element.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attributes is an insertion-ordered attribute list. Setting an existing key
// updates it in place without changing its position.
type Attributes struct {
	pairs []Attribute
}

// NewAttributes creates an attribute list from the given pairs, preserving order.
func NewAttributes(pairs ...Attribute) *Attributes {
	a := &Attributes{}
	for _, p := range pairs {
		a.Set(p.Key, p.Value)
	}
	return a
}

// Set adds or replaces an attribute.
func (a *Attributes) Set(key, value string) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			a.pairs[i].Value = value
			return
		}
	}
	a.pairs = append(a.pairs, Attribute{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (a *Attributes) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	for _, p := range a.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Pairs returns the attributes in insertion order.
func (a *Attributes) Pairs() []Attribute {
	if a == nil {
		return nil
	}
	return a.pairs
}

// Len reports the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.pairs)
}

// Clone returns an independent copy. A nil receiver yields an empty list, so
// callers may clone a service's attribute set without a presence check.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{}
	if a == nil {
		return c
	}
	c.pairs = make([]Attribute, len(a.pairs))
	copy(c.pairs, a.pairs)
	return c
}
