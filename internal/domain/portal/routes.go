// internal/domain/portal/routes.go
package portal

import (
	"fmt"
	"sort"
	"strings"
)

// RouteTable is the static mapping from path prefix to required role. It is
// built once at startup and never mutated afterwards.
type RouteTable struct {
	prefixes []routeEntry
}

type routeEntry struct {
	prefix string
	role   Role
}

// NewRouteTable builds the table and validates every entry. A rule naming an
// unknown role is a programming error in the routing setup, so it panics here
// rather than being handled defensively at request time.
func NewRouteTable(rules map[string]Role) *RouteTable {
	t := &RouteTable{}
	for prefix, role := range rules {
		if !strings.HasPrefix(prefix, "/") {
			panic(fmt.Sprintf("route table: prefix %q must start with /", prefix))
		}
		if !role.Valid() {
			panic(fmt.Sprintf("route table: unknown role %q for prefix %q", role, prefix))
		}
		t.prefixes = append(t.prefixes, routeEntry{prefix: prefix, role: role})
	}

	// Longest prefix wins so that e.g. /student/change-password can be carved
	// out of /student.
	sort.Slice(t.prefixes, func(i, j int) bool {
		return len(t.prefixes[i].prefix) > len(t.prefixes[j].prefix)
	})

	return t
}

// RequiredRole resolves a path to the role that must hold for it to render.
// The second return is false for unprotected paths.
func (t *RouteTable) RequiredRole(path string) (Role, bool) {
	for _, e := range t.prefixes {
		trimmed := strings.TrimSuffix(e.prefix, "/")
		if path == trimmed || strings.HasPrefix(path, trimmed+"/") {
			return e.role, true
		}
	}
	return "", false
}
