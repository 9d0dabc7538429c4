package httpproto

import "strings"

// Header is a case-insensitive, multi-valued header map with stable
// insertion order for emission. It is deliberately not a plain
// map[string][]string: Go's textproto.MIMEHeader normalizes keys
// destructively (losing the client's original casing), which this
// invariant — "Header keys compare case-insensitively but retain original
// case on emit" — forbids.
type Header struct {
	// order holds lowercased keys in first-insertion order.
	order []string
	// original maps a lowercased key to the casing it was first added with.
	original map[string]string
	// values maps a lowercased key to all values added under it, in order.
	values map[string][]string
}

// NewHeader returns an empty Header ready for use.
func NewHeader() *Header {
	return &Header{
		original: make(map[string]string),
		values:   make(map[string][]string),
	}
}

// Add appends value under key, accumulating rather than replacing. The
// casing of key is remembered only the first time it is seen.
func (h *Header) Add(key, value string) {
	lk := strings.ToLower(key)
	if _, seen := h.values[lk]; !seen {
		h.order = append(h.order, lk)
		h.original[lk] = key
	}
	h.values[lk] = append(h.values[lk], value)
}

// Set replaces all values for key with a single value, preserving the
// original casing already on record or adopting key's casing if new.
func (h *Header) Set(key, value string) {
	lk := strings.ToLower(key)
	if _, seen := h.values[lk]; !seen {
		h.order = append(h.order, lk)
		h.original[lk] = key
	}
	h.values[lk] = []string{value}
}

// Get returns the last value added for key (case-insensitive), and whether
// key was present at all.
func (h *Header) Get(key string) (string, bool) {
	vs, ok := h.values[strings.ToLower(key)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// GetDefault returns Get's value or def if key is absent.
func (h *Header) GetDefault(key, def string) string {
	if v, ok := h.Get(key); ok {
		return v
	}
	return def
}

// Values returns every value added for key (case-insensitive), in
// insertion order, or nil if key is absent.
func (h *Header) Values(key string) []string {
	return h.values[strings.ToLower(key)]
}

// Has reports whether key is present (case-insensitive).
func (h *Header) Has(key string) bool {
	_, ok := h.values[strings.ToLower(key)]
	return ok
}

// Contains reports whether the comma-separated value set under key includes
// token, compared case-insensitively with surrounding whitespace trimmed.
// Used for Connection: keep-alive / close and Upgrade: websocket checks.
func (h *Header) Contains(key, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, v := range h.Values(key) {
		for _, part := range strings.Split(v, ",") {
			if strings.ToLower(strings.TrimSpace(part)) == token {
				return true
			}
		}
	}
	return false
}

// Keys returns the header names in first-insertion order, in their
// original casing.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.order))
	for i, lk := range h.order {
		keys[i] = h.original[lk]
	}
	return keys
}

// Clear empties the map in place so the same Header instance can be reused
// across keep-alive requests without reallocating.
func (h *Header) Clear() {
	h.order = h.order[:0]
	for k := range h.original {
		delete(h.original, k)
	}
	for k := range h.values {
		delete(h.values, k)
	}
}
