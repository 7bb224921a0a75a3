package parser

// Context derives the literal prefixes and separators of a rule set and
// caches them until Flush is called.
type Context struct {
	rules      *RuleSet
	prefixes   []string
	separators []string
}

// NewContext creates a parsing context reading from rules.
func NewContext(rules *RuleSet) *Context {
	return &Context{rules: rules}
}

// Prefixes returns the configured prefix literals in declaration order.
func (c *Context) Prefixes() []string {
	if c.prefixes == nil {
		c.prefixes = c.rules.Prefixes.Literals()
	}
	return c.prefixes
}

// Separators returns the configured separator literals in declaration order.
func (c *Context) Separators() []string {
	if c.separators == nil {
		c.separators = c.rules.Separators.Literals()
	}
	return c.separators
}

// Flush drops the cached literals. Call it after mutating the rule set.
func (c *Context) Flush() {
	c.prefixes = nil
	c.separators = nil
}
