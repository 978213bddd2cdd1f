// Package zrc exposes the vendor Zoom Rooms Controller SDK through a declared
// Go surface. It is a marshalling layer only: every operation forwards into
// the vendor implementation and returns its result code unchanged. Pairing,
// meeting signaling, connection handling and credential storage all live
// inside the vendor SDK, which this package never reimplements.
//
// The vendor implementation is wired in once with RegisterProvider, the way
// database/sql drivers register themselves. GetInstance and DestroyInstance
// are the only lifecycle operations; there is no lazy creation on first use.
package zrc

import (
	"errors"
	"sync"
)

// DefaultRoomID is passed to CreateRoomsService when the caller does not
// target a specific room.
const DefaultRoomID = "default"

var (
	// ErrNoProvider means no vendor implementation has been registered.
	ErrNoProvider = errors.New("zrc: no SDK provider registered")
	// ErrNotAcquired means DestroyInstance was called without a matching
	// GetInstance.
	ErrNotAcquired = errors.New("zrc: SDK instance not acquired")
)

// SDK is the process-wide vendor singleton. The handle is owned by the
// vendor; callers obtain it with GetInstance and must not retain it past
// DestroyInstance.
type SDK interface {
	// HeartBeat drives the vendor event loop. On Linux the vendor delivers
	// queued callbacks from inside this call, so the embedding application
	// must invoke it periodically (the vendor documents 150ms).
	HeartBeat() SDKError
	ForceFlushLog() SDKError

	// CreateRoomsService returns the per-room service handle, creating it
	// on first use. The returned reference is owned by the vendor SDK and
	// stays valid only while the singleton lives.
	CreateRoomsService(roomID string) RoomsService
	QueryAllRoomsServices() []RoomInfo

	// RegisterSink installs the metadata sink the vendor queries for device
	// and application identity. The vendor retains the sink without taking
	// ownership; use the package-level RegisterSink which keeps the adapter
	// alive for the registration's duration.
	RegisterSink(Sink) SDKError
}

// Provider constructs and tears down the vendor singleton. Exactly one
// provider can be registered per process.
type Provider interface {
	GetInstance() SDK
	DestroyInstance()
}

var (
	providerMu sync.Mutex
	provider   Provider
	instance   SDK
	activeSink *SinkAdapter
)

// RegisterProvider wires the vendor implementation. It panics if called
// twice or with a nil provider, matching driver-registration conventions.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		panic("zrc: RegisterProvider called with nil provider")
	}
	if provider != nil {
		panic("zrc: provider already registered")
	}
	provider = p
}

// GetInstance acquires the vendor singleton. The binding does not own the
// returned handle and never destroys it implicitly.
func GetInstance() (SDK, error) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider == nil {
		return nil, ErrNoProvider
	}
	if instance == nil {
		instance = provider.GetInstance()
	}
	return instance, nil
}

// DestroyInstance releases the vendor singleton. Service references and the
// registered sink become invalid once it returns.
func DestroyInstance() error {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider == nil {
		return ErrNoProvider
	}
	if instance == nil {
		return ErrNotAcquired
	}
	provider.DestroyInstance()
	instance = nil
	activeSink = nil
	return nil
}

// RegisterSink adapts handler to the vendor sink contract and installs it on
// sdk. The adapter is retained for as long as the registration stands because
// the vendor keeps a raw reference to it without ownership. Calling
// RegisterSink again replaces the previous adapter; exactly one is active per
// SDK handle. The vendor's registration result code is returned unmodified.
func RegisterSink(sdk SDK, handler any) SDKError {
	adapter := NewSinkAdapter(handler)
	providerMu.Lock()
	activeSink = adapter
	providerMu.Unlock()
	return sdk.RegisterSink(adapter)
}

// ActiveSink returns the adapter currently kept alive for the vendor, if any.
func ActiveSink() *SinkAdapter {
	providerMu.Lock()
	defer providerMu.Unlock()
	return activeSink
}

// resetForTest clears the package singletons between tests.
func resetForTest() {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = nil
	instance = nil
	activeSink = nil
}
