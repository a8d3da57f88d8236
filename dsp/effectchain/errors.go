package effectchain

import "errors"

var (
	// ErrUnknownEffect is returned when a node references an unregistered effect type.
	ErrUnknownEffect = errors.New("unknown effect type")
	// ErrCycle is returned when a graph's connections form a cycle.
	ErrCycle = errors.New("graph contains cycle")
	// ErrUnknownNode is returned when a connection references a missing node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when a node ID is added twice.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrNoGraph is returned when a Chain processes before a graph is loaded.
	ErrNoGraph = errors.New("no graph loaded")
)
