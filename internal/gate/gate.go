// Package gate decides, for each incoming navigation, whether the request
// may proceed or must be redirected, based only on the request path and
// whether a session credential is present.
package gate

// Action is the outcome of a gate decision.
type Action string

const (
	ActionAllow         Action = "allow"
	ActionRedirectLogin Action = "redirect_login"
	ActionRedirectHome  Action = "redirect_home"
)

// Decision is what the gate tells the host framework to do. Location is
// empty for ActionAllow.
type Decision struct {
	Action   Action
	Location string
}

func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

// Gate holds the route table and redirect targets. Decide performs no I/O
// and has no side effects.
type Gate struct {
	table     *Table
	loginPath string
	homePath  string
}

type Option func(*Gate)

func WithLoginPath(p string) Option {
	return func(g *Gate) { g.loginPath = cleanPath(p) }
}

func WithHomePath(p string) Option {
	return func(g *Gate) { g.homePath = cleanPath(p) }
}

func New(table *Table, opts ...Option) *Gate {
	if table == nil {
		table = NewTable(DefaultRoutes)
	}
	g := &Gate{
		table:     table,
		loginPath: LoginPath,
		homePath:  HomePath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Default returns a gate over DefaultRoutes.
func Default() *Gate {
	return New(NewTable(DefaultRoutes))
}

// Decide classifies p and applies the access rules:
//
//	neutral                       -> allow
//	public    + credential        -> home
//	protected + no credential     -> login
//	root      + credential        -> home
//	anything else                 -> allow
func (g *Gate) Decide(p string, hasCredential bool) Decision {
	clean := cleanPath(p)

	switch g.table.Classify(clean) {
	case LevelNeutral:
		return allow()
	case LevelPublic:
		if hasCredential {
			return Decision{Action: ActionRedirectHome, Location: g.homePath}
		}
		return allow()
	default:
		if !hasCredential {
			return Decision{Action: ActionRedirectLogin, Location: g.loginPath}
		}
		if clean == RootPath {
			return Decision{Action: ActionRedirectHome, Location: g.homePath}
		}
		return allow()
	}
}

// Classify exposes the table lookup used by Decide.
func (g *Gate) Classify(p string) Level {
	return g.table.Classify(p)
}

func allow() Decision {
	return Decision{Action: ActionAllow}
}
