package countdown

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// PanicHandler is called when a panic is recovered. It receives the panic
// value and stack trace.
type PanicHandler func(panicVal interface{}, stack []byte)

// RecoveryConfig configures panic recovery behavior.
type RecoveryConfig struct {
	// Handler is called when a panic is recovered.
	// If nil, the panic is only logged.
	Handler PanicHandler

	// Logger for recording recovered panics.
	Logger *zap.Logger

	// Rethrow re-raises the panic after handling. Use this to log a panic
	// without swallowing it.
	Rethrow bool
}

// GoWithRecovery starts a goroutine with panic recovery.
func GoWithRecovery(cfg RecoveryConfig, fn func()) {
	go func() {
		defer RecoverPanic(cfg)
		fn()
	}()
}

// RecoverPanic recovers from a panic and handles it according to config.
// Use as: defer RecoverPanic(cfg)
func RecoverPanic(cfg RecoveryConfig) {
	if r := recover(); r != nil {
		stack := debug.Stack()

		if cfg.Logger != nil {
			cfg.Logger.Error("recovered panic",
				zap.Any("panic", r),
				zap.ByteString("stack", stack))
		}

		if cfg.Handler != nil {
			cfg.Handler(r, stack)
		}

		if cfg.Rethrow {
			panic(r)
		}
	}
}
