package interfaces

import "time"

// ListOption is a functional option for filtering List results
type ListOption func(*listConfig)

type listConfig struct {
	area     string
	status   string
	typ      string
	userID   string
	parentID int64
	since    *time.Time
	until    *time.Time
}

// WithArea filters records by area (exact match)
func WithArea(area string) ListOption {
	return func(c *listConfig) {
		c.area = area
	}
}

// WithStatus filters records by status. Any string enum is accepted.
func WithStatus[T ~string](status T) ListOption {
	return func(c *listConfig) {
		c.status = string(status)
	}
}

// WithType filters records by type
func WithType[T ~string](typ T) ListOption {
	return func(c *listConfig) {
		c.typ = string(typ)
	}
}

// WithUserID filters records by the user they belong to
func WithUserID(userID string) ListOption {
	return func(c *listConfig) {
		c.userID = userID
	}
}

// WithParentID filters child records by their parent ID
func WithParentID(id int64) ListOption {
	return func(c *listConfig) {
		c.parentID = id
	}
}

// WithSince keeps records whose reference date is at or after t
func WithSince(t time.Time) ListOption {
	return func(c *listConfig) {
		c.since = &t
	}
}

// WithUntil keeps records whose reference date is before t
func WithUntil(t time.Time) ListOption {
	return func(c *listConfig) {
		c.until = &t
	}
}

// ListConfig is the resolved set of list filters
type ListConfig struct {
	cfg listConfig
}

// BuildListConfig resolves options
func BuildListConfig(opts ...ListOption) *ListConfig {
	c := &ListConfig{}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

func (c *ListConfig) Area() string      { return c.cfg.area }
func (c *ListConfig) Status() string    { return c.cfg.status }
func (c *ListConfig) Type() string      { return c.cfg.typ }
func (c *ListConfig) UserID() string    { return c.cfg.userID }
func (c *ListConfig) ParentID() int64   { return c.cfg.parentID }
func (c *ListConfig) Since() *time.Time { return c.cfg.since }
func (c *ListConfig) Until() *time.Time { return c.cfg.until }

// InWindow checks a reference date against the since/until bounds
func (c *ListConfig) InWindow(t time.Time) bool {
	if c.cfg.since != nil && t.Before(*c.cfg.since) {
		return false
	}
	if c.cfg.until != nil && !t.Before(*c.cfg.until) {
		return false
	}
	return true
}

// Match is a helper for in-memory filtering. Empty filters match anything.
func (c *ListConfig) Match(area, status, typ string) bool {
	if c.cfg.area != "" && c.cfg.area != area {
		return false
	}
	if c.cfg.status != "" && c.cfg.status != status {
		return false
	}
	if c.cfg.typ != "" && c.cfg.typ != typ {
		return false
	}
	return true
}
