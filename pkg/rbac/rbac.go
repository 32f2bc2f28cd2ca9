package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of staff roles. Every authenticated session carries
// exactly one of them.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBackend  Role = "BACKEND"
	RoleRM       Role = "RM"
	RoleMST      Role = "MST"
	RoleAccounts Role = "ACCOUNTS"
)

// Roles returns every declared role. The policy tables are validated against
// this list, so adding a role here without table entries fails startup.
func Roles() []Role {
	return []Role{RoleAdmin, RoleBackend, RoleRM, RoleMST, RoleAccounts}
}

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Roles() {
		if r == role {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// NavItem is a single navigation menu entry. Order in the tables below is the
// menu rendering order.
type NavItem struct {
	Label string
	Path  string
}

// adminPrefix is reachable by ADMIN only, regardless of the prefix tables.
const adminPrefix = "/admin"

var navItemsByRole = map[Role][]NavItem{
	RoleAdmin: {
		{Label: "Dashboard", Path: "/dashboard/home"},
		{Label: "Clients", Path: "/dashboard/clients"},
		{Label: "Tickets", Path: "/dashboard/tickets"},
		{Label: "Quotations", Path: "/dashboard/quotations"},
		{Label: "Expenses", Path: "/dashboard/expenses"},
		{Label: "Rate Cards", Path: "/dashboard/ratecards"},
		{Label: "Reports", Path: "/dashboard/reports"},
		{Label: "Administration", Path: "/admin"},
	},
	RoleBackend: {
		{Label: "Dashboard", Path: "/dashboard/home"},
		{Label: "Clients", Path: "/dashboard/clients"},
		{Label: "Tickets", Path: "/dashboard/tickets"},
		{Label: "Quotations", Path: "/dashboard/quotations"},
		{Label: "Expenses", Path: "/dashboard/expenses"},
		{Label: "Rate Cards", Path: "/dashboard/ratecards"},
	},
	RoleRM: {
		{Label: "Dashboard", Path: "/dashboard/home"},
		{Label: "Clients", Path: "/dashboard/clients"},
		{Label: "Tickets", Path: "/dashboard/tickets"},
		{Label: "Quotations", Path: "/dashboard/quotations"},
	},
	RoleMST: {
		{Label: "Dashboard", Path: "/dashboard/home"},
		{Label: "Tickets", Path: "/dashboard/tickets"},
	},
	RoleAccounts: {
		{Label: "Dashboard", Path: "/dashboard/home"},
		{Label: "Quotations", Path: "/dashboard/quotations"},
		{Label: "Expenses", Path: "/dashboard/expenses"},
		{Label: "Rate Cards", Path: "/dashboard/ratecards"},
		{Label: "Reports", Path: "/dashboard/reports"},
	},
}

// sharedPrefixes are reachable by every authenticated role: session
// introspection and the navigation menu itself.
var sharedPrefixes = []string{
	"/api/auth",
	"/api/navigation",
}

var pathPrefixesByRole = map[Role][]string{
	RoleAdmin: {
		"/dashboard/home",
		"/dashboard/clients",
		"/dashboard/tickets",
		"/dashboard/quotations",
		"/dashboard/expenses",
		"/dashboard/ratecards",
		"/dashboard/reports",
		"/api/clients",
		"/api/tickets",
		"/api/quotations",
		"/api/expenses",
		"/api/ratecards",
		"/api/reports",
		"/api/users",
	},
	RoleBackend: {
		"/dashboard/home",
		"/dashboard/clients",
		"/dashboard/tickets",
		"/dashboard/quotations",
		"/dashboard/expenses",
		"/dashboard/ratecards",
		"/api/clients",
		"/api/tickets",
		"/api/quotations",
		"/api/expenses",
		"/api/ratecards",
	},
	RoleRM: {
		"/dashboard/home",
		"/dashboard/clients",
		"/dashboard/tickets",
		"/dashboard/quotations",
		"/api/clients",
		"/api/tickets",
		"/api/quotations",
	},
	RoleMST: {
		"/dashboard/home",
		"/dashboard/tickets",
		"/api/tickets",
	},
	RoleAccounts: {
		"/dashboard/home",
		"/dashboard/quotations",
		"/dashboard/expenses",
		"/dashboard/ratecards",
		"/dashboard/reports",
		"/api/quotations",
		"/api/expenses",
		"/api/ratecards",
		"/api/reports",
	},
}

// ErrConfiguration signals an incomplete policy table. It is fatal at
// startup; the policy never degrades to an empty grant set.
var ErrConfiguration = errors.New("access policy configuration error")

// Policy answers which navigation items a role sees and which paths it may
// reach. Tables are fixed at construction and never mutated.
type Policy struct {
	navItems     map[Role][]NavItem
	pathPrefixes map[Role][]string
}

// NewPolicy builds the access policy and validates the declared tables:
// every role must appear in both tables, and every nav item a role sees must
// point at a path that role can actually reach.
func NewPolicy() (*Policy, error) {
	p := &Policy{
		navItems:     navItemsByRole,
		pathPrefixes: pathPrefixesByRole,
	}

	for _, role := range Roles() {
		navs, ok := p.navItems[role]
		if !ok {
			return nil, fmt.Errorf("%w: role %s missing from nav item table", ErrConfiguration, role)
		}
		if _, ok := p.pathPrefixes[role]; !ok {
			return nil, fmt.Errorf("%w: role %s missing from path prefix table", ErrConfiguration, role)
		}
		for _, nav := range navs {
			if !p.IsPathAllowed(role, nav.Path) {
				return nil, fmt.Errorf("%w: role %s nav item %q points at unreachable path %s",
					ErrConfiguration, role, nav.Label, nav.Path)
			}
		}
	}
	return p, nil
}

// IsPathAllowed reports whether role may reach path. Matching is plain
// prefix comparison; the /admin prefix is reachable by ADMIN only. Unknown
// roles and uncovered paths are denied.
func (p *Policy) IsPathAllowed(role Role, path string) bool {
	if strings.HasPrefix(path, adminPrefix) {
		return role == RoleAdmin
	}
	for _, prefix := range sharedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, prefix := range p.pathPrefixes[role] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// VisibleNavItems returns the navigation entries for role in declaration
// order. The returned slice is a copy.
func (p *Policy) VisibleNavItems(role Role) []NavItem {
	items := p.navItems[role]
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}
