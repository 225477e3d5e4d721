// Package identity resolves the role of an authenticated principal from the
// external identity provider.
package identity

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Role is one of the four fixed application roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// DefaultRole is the least-privileged role, used whenever none is known.
const DefaultRole = RoleStudent

// ParseRole normalizes a role attribute; unknown or empty values fall back
// to DefaultRole.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return r
	default:
		return DefaultRole
	}
}

func (r Role) String() string { return string(r) }

// Resolver returns the role of a principal. An empty userID resolves to
// DefaultRole without any lookup.
type Resolver interface {
	ResolveRole(ctx context.Context, userID string) (Role, error)
}

// ── static ──

// StaticResolver resolves roles from a fixed map, for deployments without
// a remote provider and for tests.
type StaticResolver map[string]Role

// NewStaticResolver builds a StaticResolver from raw role strings.
func NewStaticResolver(roles map[string]string) StaticResolver {
	r := make(StaticResolver, len(roles))
	for id, role := range roles {
		r[id] = ParseRole(role)
	}
	return r
}

func (s StaticResolver) ResolveRole(_ context.Context, userID string) (Role, error) {
	if userID == "" {
		return DefaultRole, nil
	}
	if role, ok := s[userID]; ok {
		return role, nil
	}
	return DefaultRole, nil
}

// ── caching ──

// CachingResolver memoizes another Resolver for a fixed TTL. Errors are
// never cached.
type CachingResolver struct {
	next  Resolver
	cache *gocache.Cache
}

// NewCachingResolver wraps next with a TTL cache. A non-positive ttl
// returns next unchanged, keeping one provider lookup per call.
func NewCachingResolver(next Resolver, ttl time.Duration) Resolver {
	if ttl <= 0 {
		return next
	}
	return &CachingResolver{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachingResolver) ResolveRole(ctx context.Context, userID string) (Role, error) {
	if userID == "" {
		return DefaultRole, nil
	}
	if v, ok := c.cache.Get(userID); ok {
		return v.(Role), nil
	}

	role, err := c.next.ResolveRole(ctx, userID)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(userID, role)
	return role, nil
}
