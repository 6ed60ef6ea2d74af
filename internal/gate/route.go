package gate

import (
	"path"
	"sort"
	"strings"
)

// Level is the protection level of a route prefix.
type Level string

const (
	LevelPublic    Level = "public"
	LevelProtected Level = "protected"
	LevelNeutral   Level = "neutral"
)

const (
	LoginPath = "/admin-login"
	HomePath  = "/dashboard"
	RootPath  = "/"
)

// Route binds a path prefix to a protection level.
type Route struct {
	Prefix string
	Level  Level
}

// DefaultRoutes is the dashboard's route table. The root entry makes every
// unlisted path protected.
var DefaultRoutes = []Route{
	{Prefix: RootPath, Level: LevelProtected},
	{Prefix: HomePath, Level: LevelProtected},
	{Prefix: "/logout", Level: LevelProtected},
	{Prefix: "/metrics", Level: LevelProtected},
	{Prefix: LoginPath, Level: LevelPublic},
	{Prefix: LoginPath + HomePath, Level: LevelProtected},
	{Prefix: "/api", Level: LevelNeutral},
	{Prefix: "/static", Level: LevelNeutral},
	{Prefix: "/_next", Level: LevelNeutral},
	{Prefix: "/favicon.ico", Level: LevelNeutral},
	{Prefix: "/health", Level: LevelNeutral},
}

// Table classifies request paths. It is immutable after construction and
// safe for concurrent use.
type Table struct {
	routes []Route // longest prefix first
}

// NewTable builds a table from routes. Prefixes are cleaned; a later
// duplicate prefix replaces an earlier one. A table without a root entry
// gets one at LevelProtected.
func NewTable(routes []Route) *Table {
	byPrefix := make(map[string]Level, len(routes)+1)
	byPrefix[RootPath] = LevelProtected
	for _, r := range routes {
		byPrefix[cleanPath(r.Prefix)] = r.Level
	}

	sorted := make([]Route, 0, len(byPrefix))
	for prefix, level := range byPrefix {
		sorted = append(sorted, Route{Prefix: prefix, Level: level})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].Prefix) != len(sorted[j].Prefix) {
			return len(sorted[i].Prefix) > len(sorted[j].Prefix)
		}
		return sorted[i].Prefix < sorted[j].Prefix
	})

	return &Table{routes: sorted}
}

// Classify returns the level of the most specific prefix matching p.
func (t *Table) Classify(p string) Level {
	return t.match(cleanPath(p)).Level
}

// Routes returns the table ordered from most to least specific.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table) match(p string) Route {
	for _, r := range t.routes {
		if hasSegmentPrefix(p, r.Prefix) {
			return r
		}
	}
	return Route{Prefix: RootPath, Level: LevelProtected}
}

// hasSegmentPrefix matches whole path segments only, so "/apix" does not
// match "/api".
func hasSegmentPrefix(p, prefix string) bool {
	if prefix == RootPath {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func cleanPath(p string) string {
	if p == "" {
		return RootPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
