package httpd

// HeaderName is a normalized HTTP header field name. Names that differ only
// in case compare and hash equally once normalized.
type HeaderName string

// CanonicalHeaderName normalizes a field name: each '-'-separated segment
// gets an uppercase first letter and a lowercase remainder, so
// "content-type", "Content-Type", and "CONTENT-TYPE" all become
// "Content-Type".
func CanonicalHeaderName(s string) HeaderName {
	b := []byte(s)
	upper := true
	for i, c := range b {
		switch {
		case upper && 'a' <= c && c <= 'z':
			b[i] = c - 'a' + 'A'
		case !upper && 'A' <= c && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
		upper = c == '-'
	}
	return HeaderName(b)
}

// Headers is an unordered header map. Keys are normalized on every
// operation; the last value set for a name wins. Size limits are the
// parser's concern, not the map's.
type Headers map[HeaderName]string

func (h Headers) Set(name, value string) {
	h[CanonicalHeaderName(name)] = value
}

func (h Headers) Get(name string) string {
	return h[CanonicalHeaderName(name)]
}

func (h Headers) Contains(name string) bool {
	_, ok := h[CanonicalHeaderName(name)]
	return ok
}
