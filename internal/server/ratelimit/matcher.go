package ratelimit

import (
	"strings"
)

// unlimitedEndpoints are never throttled, whatever the configuration says.
var unlimitedEndpoints = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint returns the configuration governing method and path, or nil when
// the default limit applies. An exact path wins; otherwise the longest configured
// prefix ending in "/" wins, so "/analyses/" covers "/analyses/{id}". A trailing
// slash on the request path is ignored.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if unlimitedEndpoints[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}

// bucketPath is the path a request's token bucket is keyed on. Requests under a
// prefix configuration share one bucket per client instead of one per resource ID.
func bucketPath(path string, matched *EndpointConfig) string {
	if matched != nil && strings.HasSuffix(matched.Path, "/") {
		return matched.Path
	}
	return path
}
