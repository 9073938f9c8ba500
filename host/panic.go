package host

import (
	"sync"

	"github.com/nearbyte/kdvec"
)

var (
	panicHandlerOnce sync.Once
	panicLogger      kdvec.Logger = kdvec.NopLogger()
)

// InstallPanicHandler sets the Logger used to report recovered hook panics.
// Only hook panics are recovered; a panic raised anywhere else in a host
// entry point or Handle method propagates to the caller. It is idempotent:
// only the first call in a process
// takes effect, so an embedder that accidentally calls it twice (once at
// startup, once from a test helper) does not silently swap loggers
// mid-run.
func InstallPanicHandler(logger kdvec.Logger) {
	panicHandlerOnce.Do(func() {
		if logger != nil {
			panicLogger = logger
		}
	})
}

func logPanic(where string, r interface{}) {
	panicLogger.Error("recovered panic", "where", where, "value", r)
}
