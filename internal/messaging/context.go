package messaging

// Context is the communicate application context. A node keeps no state
// between runs, so loading and saving do nothing.
type Context struct{}

// NewContext creates the communicate application context.
func NewContext() *Context {
	return &Context{}
}

// Load implements application.Context.
func (*Context) Load() error { return nil }

// Save implements application.Context.
func (*Context) Save() error { return nil }
