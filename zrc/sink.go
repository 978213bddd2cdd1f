package zrc

import (
	"errors"
	"fmt"
	"reflect"
)

// Sink is the vendor's metadata-query contract. The vendor SDK calls these
// while pairing and at startup; all are independent zero-argument queries
// except the proxy prompt. Implementations report conversion failures through
// the error return, which the vendor shim propagates to the operation that
// triggered the query.
type Sink interface {
	OnGetDeviceManufacturer() (string, error)
	OnGetDeviceModel() (string, error)
	OnGetDeviceSerialNumber() (string, error)
	OnGetDeviceMacAddress() (string, error)
	OnGetDeviceIP() (string, error)
	OnGetFirmwareVersion() (string, error)
	OnGetAppName() (string, error)
	OnGetAppVersion() (string, error)
	OnGetAppDeveloper() (string, error)
	OnGetAppContact() (string, error)
	OnGetAppContentDirPath() (string, error)
	OnPromptToInputUserNamePasswordForProxyServer(host string, port uint32, description string) (bool, error)
}

// Defaults returned when the handler does not implement a callback. They
// apply to absence only, never to a failing implementation.
//
// DefaultAppContentDirPath points at the location where the vendor SDK keeps
// its room-credential database. The upstream binding falls back to it
// silently; kept as-is pending confirmation against vendor documentation.
const (
	DefaultDeviceManufacturer = "ZRC_Wrapper"
	DefaultDeviceModel        = "v1.0"
	DefaultDeviceSerialNumber = "0000"
	DefaultDeviceMacAddress   = "00:00:00:00:00:00"
	DefaultDeviceIP           = "0.0.0.0"
	DefaultFirmwareVersion    = "1.0.0"
	DefaultAppName            = "ZRC_Wrapper"
	DefaultAppVersion         = "1.0.0"
	DefaultAppDeveloper       = "Custom"
	DefaultAppContact         = "support@example.com"
	DefaultAppContentDirPath  = "/root/.zoom/data"
)

// ConversionError reports a handler callback whose shape or return value
// could not be marshalled to the type the vendor SDK expects.
type ConversionError struct {
	Callback string
	Value    any
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("zrc: callback %s: cannot convert %T value to string: %v", e.Callback, e.Value, e.Err)
	}
	return fmt.Sprintf("zrc: callback %s: %v", e.Callback, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

var (
	errBadShape    = errors.New("callback must take no arguments and return a value with an optional error")
	errNotString   = errors.New("value is not string-kinded")
	errNilValue    = errors.New("callback returned untyped nil")
	errorIfaceType = reflect.TypeOf((*error)(nil)).Elem()
)

type sinkSlot func() (string, error)

// Callback table in vendor declaration order, paired with the documented
// absence defaults.
var sinkCallbacks = []struct {
	name     string
	fallback string
}{
	{"OnGetDeviceManufacturer", DefaultDeviceManufacturer},
	{"OnGetDeviceModel", DefaultDeviceModel},
	{"OnGetDeviceSerialNumber", DefaultDeviceSerialNumber},
	{"OnGetDeviceMacAddress", DefaultDeviceMacAddress},
	{"OnGetDeviceIP", DefaultDeviceIP},
	{"OnGetFirmwareVersion", DefaultFirmwareVersion},
	{"OnGetAppName", DefaultAppName},
	{"OnGetAppVersion", DefaultAppVersion},
	{"OnGetAppDeveloper", DefaultAppDeveloper},
	{"OnGetAppContact", DefaultAppContact},
	{"OnGetAppContentDirPath", DefaultAppContentDirPath},
}

// SinkAdapter satisfies Sink by delegating to an optionally-partial handler
// object. Each callback slot is resolved once at construction: a handler
// method with the exact expected name is bound, a missing one is replaced by
// its default closure. The adapter holds the handler without owning it and
// performs no caching; repeated queries re-invoke the handler every time.
type SinkAdapter struct {
	handler any
	slots   map[string]sinkSlot
}

// NewSinkAdapter resolves handler's callbacks into adapter slots. A nil
// handler yields an adapter that answers every query with its default.
func NewSinkAdapter(handler any) *SinkAdapter {
	a := &SinkAdapter{
		handler: handler,
		slots:   make(map[string]sinkSlot, len(sinkCallbacks)),
	}
	hv := reflect.ValueOf(handler)
	for _, cb := range sinkCallbacks {
		a.slots[cb.name] = resolveSlot(hv, cb.name, cb.fallback)
	}
	return a
}

// Handler returns the host object the adapter was built around.
func (a *SinkAdapter) Handler() any { return a.handler }

func resolveSlot(hv reflect.Value, name, fallback string) sinkSlot {
	if !hv.IsValid() {
		return func() (string, error) { return fallback, nil }
	}
	m := hv.MethodByName(name)
	if !m.IsValid() {
		// Absence is not an error: answer with the documented default.
		return func() (string, error) { return fallback, nil }
	}

	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() < 1 || t.NumOut() > 2 ||
		(t.NumOut() == 2 && !t.Out(1).Implements(errorIfaceType)) {
		// The name exists but its shape cannot be marshalled. This is a
		// failure of the implementation, so it must not fall back to the
		// default; surface it on every invocation instead.
		shapeErr := &ConversionError{Callback: name, Err: errBadShape}
		return func() (string, error) { return "", shapeErr }
	}

	return func() (string, error) {
		out := m.Call(nil)
		if len(out) == 2 {
			if e, _ := out[1].Interface().(error); e != nil {
				return "", &ConversionError{Callback: name, Err: e}
			}
		}
		return convertToString(name, out[0])
	}
}

func convertToString(name string, rv reflect.Value) (string, error) {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return "", &ConversionError{Callback: name, Err: errNilValue}
	}
	if rv.Kind() != reflect.String {
		return "", &ConversionError{Callback: name, Value: rv.Interface(), Err: errNotString}
	}
	return rv.String(), nil
}

func (a *SinkAdapter) invoke(name string) (string, error) { return a.slots[name]() }

func (a *SinkAdapter) OnGetDeviceManufacturer() (string, error) {
	return a.invoke("OnGetDeviceManufacturer")
}

func (a *SinkAdapter) OnGetDeviceModel() (string, error) {
	return a.invoke("OnGetDeviceModel")
}

func (a *SinkAdapter) OnGetDeviceSerialNumber() (string, error) {
	return a.invoke("OnGetDeviceSerialNumber")
}

func (a *SinkAdapter) OnGetDeviceMacAddress() (string, error) {
	return a.invoke("OnGetDeviceMacAddress")
}

func (a *SinkAdapter) OnGetDeviceIP() (string, error) {
	return a.invoke("OnGetDeviceIP")
}

func (a *SinkAdapter) OnGetFirmwareVersion() (string, error) {
	return a.invoke("OnGetFirmwareVersion")
}

func (a *SinkAdapter) OnGetAppName() (string, error) {
	return a.invoke("OnGetAppName")
}

func (a *SinkAdapter) OnGetAppVersion() (string, error) {
	return a.invoke("OnGetAppVersion")
}

func (a *SinkAdapter) OnGetAppDeveloper() (string, error) {
	return a.invoke("OnGetAppDeveloper")
}

func (a *SinkAdapter) OnGetAppContact() (string, error) {
	return a.invoke("OnGetAppContact")
}

func (a *SinkAdapter) OnGetAppContentDirPath() (string, error) {
	return a.invoke("OnGetAppContentDirPath")
}

// OnPromptToInputUserNamePasswordForProxyServer always declines. Proxy
// credential prompting is a fixed policy of this binding, not a handler
// capability.
func (a *SinkAdapter) OnPromptToInputUserNamePasswordForProxyServer(host string, port uint32, description string) (bool, error) {
	return false, nil
}
