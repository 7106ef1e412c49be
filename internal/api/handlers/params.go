package handlers

import (
	"net/http"
	"strconv"
)

// queryInt parses an integer query parameter, returning def when absent
// or malformed. Range validation belongs to the services, not here.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
