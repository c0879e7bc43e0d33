package runner

import (
	"github.com/santiago-labs/apphost/resource"
)

type ConsoleUI interface {
	Print(string, resource.Resource)
	// Start blocks until the console is closed. It is a no-op for consoles
	// without an event loop.
	Start()
	// Done signals that no more output is coming.
	Done()
}
