package httpd

import "strings"

// SplitPath turns a request path into matcher segments: leading and trailing
// slashes are stripped and the remainder split on "/". The root path yields
// a single empty segment.
func SplitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// candidate is one route's score against a path. wildcard is 0 when the
// route has no wildcard; otherwise len(segments)+1-index, so a wildcard that
// starts later scores lower.
type candidate struct {
	literals int
	params   int
	wildcard int
}

// matchRoute scans every route of the given method and returns the index of
// the most specific match plus its parameter count. Routes are scanned in
// registration order; a later route must strictly beat the current best, so
// registration order is the final tie-break.
func matchRoute(method Method, segments []string, routes []Route) (int, int, bool) {
	bestIdx := -1
	var best candidate
	for i, route := range routes {
		if route.Method != method {
			continue
		}
		cand, ok := scoreRoute(route, segments)
		if !ok {
			continue
		}
		if bestIdx < 0 || better(cand, best) {
			bestIdx, best = i, cand
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	return bestIdx, best.params, true
}

// scoreRoute walks tokens and segments in lock-step. A literal mismatch
// rejects immediately; a route that matches nothing at all, or that leaves
// tail segments uncovered without a wildcard, is rejected too.
func scoreRoute(route Route, segments []string) (candidate, bool) {
	required := 0
	for _, tok := range route.Tokens {
		if tok.kind != tokenWildcard {
			required++
		}
	}
	if len(segments) < required {
		return candidate{}, false
	}

	var c candidate
	hasWildcard := false
	for i, tok := range route.Tokens {
		switch tok.kind {
		case tokenPath:
			if i >= len(segments) || segments[i] != tok.text {
				return candidate{}, false
			}
			c.literals++
		case tokenParameter:
			if i >= len(segments) {
				return candidate{}, false
			}
			c.params++
		case tokenWildcard:
			hasWildcard = true
			c.wildcard = len(segments) + 1 - i
		}
	}
	if c.literals == 0 && c.params == 0 && c.wildcard == 0 {
		return candidate{}, false
	}
	if !hasWildcard && len(segments) != required {
		return candidate{}, false
	}
	return c, true
}

// better reports whether cand strictly beats best: more literal matches,
// then more parameter matches, then the lower wildcard score. Between two
// routes with neither literals nor parameters the higher wildcard score wins
// instead, so a catch-all defined deeper beats the generic one.
func better(cand, best candidate) bool {
	if cand.literals != best.literals {
		return cand.literals > best.literals
	}
	if cand.params != best.params {
		return cand.params > best.params
	}
	if cand.literals == 0 && cand.params == 0 {
		return cand.wildcard > best.wildcard
	}
	return cand.wildcard < best.wildcard
}

// bindParams re-walks the route's tokens and binds each parameter name to
// the path segment at its index.
func bindParams(route Route, segments []string, count int) Params {
	if count == 0 {
		return nil
	}
	params := make(Params, count)
	for i, tok := range route.Tokens {
		if tok.kind == tokenParameter && i < len(segments) {
			params[tok.text] = segments[i]
		}
	}
	return params
}
