package rbac

import (
	"context"
	"encoding/json"
	"time"

	valkey "github.com/valkey-io/valkey-go"
)

// PermissionCache caches effective permission sets keyed by role id.
// Authorization changes are rare and administrative, so short-TTL staleness
// is acceptable for reads; mutations invalidate the touched role.
type PermissionCache interface {
	Get(ctx context.Context, roleID string) ([]string, bool)
	Set(ctx context.Context, roleID string, perms []string)
	Invalidate(ctx context.Context, roleID string)
}

// ValkeyPermissionCache stores effective permission sets in Valkey
// (Redis-compatible) as JSON arrays with a TTL.
type ValkeyPermissionCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyPermissionCache connects to addr (e.g. "127.0.0.1:6379"). prefix
// namespaces keys; ttl bounds staleness and defaults to 30s.
func NewValkeyPermissionCache(addr, prefix string, ttl time.Duration) (*ValkeyPermissionCache, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "rbac:"
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ValkeyPermissionCache{client: cli, prefix: prefix, ttl: ttl}, nil
}

func (c *ValkeyPermissionCache) key(roleID string) string { return c.prefix + "perms:" + roleID }

// Get returns the cached set. Any error, including a missing key, is a miss.
func (c *ValkeyPermissionCache) Get(ctx context.Context, roleID string) ([]string, bool) {
	res := c.client.Do(ctx, c.client.B().Get().Key(c.key(roleID)).Build())
	if res.Error() != nil {
		return nil, false
	}
	raw, err := res.ToString()
	if err != nil {
		return nil, false
	}
	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil, false
	}
	return perms, true
}

// Set writes the set with the configured TTL; failures are ignored, the
// cache is advisory.
func (c *ValkeyPermissionCache) Set(ctx context.Context, roleID string, perms []string) {
	jv, err := json.Marshal(perms)
	if err != nil {
		return
	}
	_ = c.client.Do(ctx, c.client.B().Set().Key(c.key(roleID)).Value(string(jv)).Ex(c.ttl).Build()).Error()
}

// Invalidate drops the cached set; missing is not an error.
func (c *ValkeyPermissionCache) Invalidate(ctx context.Context, roleID string) {
	_ = c.client.Do(ctx, c.client.B().Del().Key(c.key(roleID)).Build()).Error()
}

// Close releases the client.
func (c *ValkeyPermissionCache) Close() { c.client.Close() }
