package launcher

import (
	"slade/internal/cmderr"
)

// FileContext is the application context of the launcher: the registration
// table, loaded from and saved to a Store.
type FileContext struct {
	store         *Store
	registrations *Registrations
}

// NewFileContext creates a context persisted at path.
func NewFileContext(path string) (*FileContext, error) {
	if path == "" {
		return nil, cmderr.InvalidArgument("path")
	}
	return &FileContext{
		store:         NewStore(path),
		registrations: NewRegistrations(),
	}, nil
}

// Registrations returns the registration table.
func (c *FileContext) Registrations() *Registrations {
	return c.registrations
}

// Path returns the registry file path.
func (c *FileContext) Path() string {
	return c.store.Path()
}

// Load implements application.Context.
func (c *FileContext) Load() error {
	return c.store.Load(c.registrations)
}

// Save implements application.Context.
func (c *FileContext) Save() error {
	return c.store.Save(c.registrations)
}
