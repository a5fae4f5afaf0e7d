//go:build !openbsd

// Package sandbox restricts what the tools can do once they have opened what
// they need. Only OpenBSD is restricted for now; elsewhere it's a no-op.
package sandbox

type Sandbox struct{}

func New(...string) (*Sandbox, error)       { return &Sandbox{}, nil }
func (*Sandbox) ReadOnlyDir(string) error   { return nil }
func (*Sandbox) ReadOnlyFile(string) error  { return nil }
func (*Sandbox) ReadWriteFile(string) error { return nil }
func (*Sandbox) Enforce() error             { return nil }
