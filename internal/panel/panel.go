// Package panel owns the single embedded UI surface that hosts the agent
// frontend. At most one surface exists at a time; it is created lazily,
// revealed on reuse, and forgotten when the user closes it.
package panel

import "codepanel/internal/protocol"

// FrontendURL is the address the surface's iframe loads. The frontend is an
// external collaborator served on a fixed loopback port; deliberately not
// configurable here.
const FrontendURL = "http://127.0.0.1:3000"

// DefaultColumn is used when the invocation carries no editor column.
const DefaultColumn = 1

// Surface is one live panel instance.
type Surface interface {
	ID() string
	Reveal(column int)
	Post(msg protocol.ContextMessage) error
}

// Options configures a single surface construction. Disposal is not a
// surface concern: the editor client reports panel closure as an event the
// Manager consumes via HandleDisposed.
type Options struct {
	Column int
}

// Factory performs the one side-effecting construction call. Tests swap it
// for a fake that counts invocations and captures Options.
type Factory interface {
	New(opts Options) (Surface, error)
}
