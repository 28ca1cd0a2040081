package guestbridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/guest-bridge/errors"
	"github.com/wippyai/guest-bridge/guest"
	"github.com/wippyai/guest-bridge/symbols"
)

// Protocol versions returned by OnLoad. VersionInvalid tells the embedder
// the bridge cannot serve the loaded adapter.
const (
	VersionInvalid int32 = 0
	ProtocolV1     int32 = 0x0001_0000
)

// OnLoad is the bridge's load hook. The embedding application calls it
// exactly once, synchronously, after instantiating the adapter and before
// any other bridge entry point. It populates the process-wide symbol cache
// and returns the protocol version the bridge speaks.
//
// Every initialization fault is intercepted at this boundary: a missing or
// skewed symbol, or an unusable connection, yields VersionInvalid instead of
// a panic unwinding into the embedder's module-loading machinery. The
// reserved argument is part of the load convention and ignored.
func OnLoad(conn guest.Conn, reserved any) (version int32) {
	_ = reserved

	defer func() {
		if r := recover(); r != nil {
			symbols.Logger().Error("adapter symbol cache initialization failed",
				zap.Any("fault", r))
			version = VersionInvalid
		}
	}()

	if conn == nil {
		panic(errors.InvalidInput(errors.PhaseLoad, "nil adapter connection"))
	}
	env, err := conn.Env()
	if err != nil {
		panic(errors.Load("obtain host runtime context", err))
	}

	symbols.EnsureInitialized(env)
	return ProtocolV1
}

// Loaded reports whether the load hook has completed successfully.
func Loaded() bool {
	return symbols.Initialized()
}
