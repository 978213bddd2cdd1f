package zrc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyHandler struct{}

type partialHandler struct{}

func (partialHandler) OnGetAppName() string { return "Lobby1" }

type fullHandler struct{}

func (fullHandler) OnGetDeviceManufacturer() string { return "Acme" }
func (fullHandler) OnGetDeviceModel() string        { return "RC-9" }
func (fullHandler) OnGetDeviceSerialNumber() string { return "SN-1234" }
func (fullHandler) OnGetDeviceMacAddress() string   { return "de:ad:be:ef:00:01" }
func (fullHandler) OnGetDeviceIP() string           { return "10.0.0.7" }
func (fullHandler) OnGetFirmwareVersion() string    { return "2.3.4" }
func (fullHandler) OnGetAppName() string            { return "Lobby Controller" }
func (fullHandler) OnGetAppVersion() string         { return "0.9.1" }
func (fullHandler) OnGetAppDeveloper() string       { return "Roomctl" }
func (fullHandler) OnGetAppContact() string         { return "ops@roomctl.dev" }
func (fullHandler) OnGetAppContentDirPath() string  { return "/var/lib/zrc" }

type wrongTypeHandler struct{}

func (wrongTypeHandler) OnGetDeviceIP() int { return 42 }

type wrongShapeHandler struct{}

func (wrongShapeHandler) OnGetAppName(prefix string) string { return prefix }

type failingHandler struct{}

func (failingHandler) OnGetAppVersion() (string, error) {
	return "", errors.New("version store unavailable")
}

type anyHandler struct{ v any }

func (h anyHandler) OnGetAppName() any { return h.v }

func TestSinkAdapterDefaultsForAbsentCallbacks(t *testing.T) {
	a := NewSinkAdapter(emptyHandler{})

	got, err := a.OnGetDeviceManufacturer()
	require.NoError(t, err)
	assert.Equal(t, DefaultDeviceManufacturer, got)

	got, err = a.OnGetDeviceIP()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", got)

	got, err = a.OnGetAppContentDirPath()
	require.NoError(t, err)
	assert.Equal(t, DefaultAppContentDirPath, got)
}

func TestSinkAdapterNilHandlerAnswersAllDefaults(t *testing.T) {
	a := NewSinkAdapter(nil)
	for _, cb := range sinkCallbacks {
		got, err := a.invoke(cb.name)
		require.NoError(t, err, cb.name)
		assert.Equal(t, cb.fallback, got, cb.name)
	}
}

func TestSinkAdapterForwardsImplementedCallbacks(t *testing.T) {
	a := NewSinkAdapter(fullHandler{})

	got, err := a.OnGetDeviceManufacturer()
	require.NoError(t, err)
	assert.Equal(t, "Acme", got)

	got, err = a.OnGetDeviceSerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "SN-1234", got)

	got, err = a.OnGetAppContentDirPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/zrc", got)
}

func TestSinkAdapterPartialHandler(t *testing.T) {
	a := NewSinkAdapter(partialHandler{})

	name, err := a.OnGetAppName()
	require.NoError(t, err)
	assert.Equal(t, "Lobby1", name)

	manufacturer, err := a.OnGetDeviceManufacturer()
	require.NoError(t, err)
	assert.Equal(t, "ZRC_Wrapper", manufacturer)
}

func TestSinkAdapterWrongReturnTypeIsConversionError(t *testing.T) {
	a := NewSinkAdapter(wrongTypeHandler{})

	_, err := a.OnGetDeviceIP()
	require.Error(t, err)
	var cerr *ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "OnGetDeviceIP", cerr.Callback)
	assert.Equal(t, 42, cerr.Value)
}

func TestSinkAdapterWrongShapeIsConversionErrorNotDefault(t *testing.T) {
	a := NewSinkAdapter(wrongShapeHandler{})

	_, err := a.OnGetAppName()
	var cerr *ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "OnGetAppName", cerr.Callback)
	assert.ErrorIs(t, err, errBadShape)
}

func TestSinkAdapterHandlerErrorIsNotSwallowed(t *testing.T) {
	a := NewSinkAdapter(failingHandler{})

	_, err := a.OnGetAppVersion()
	var cerr *ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "version store unavailable")
}

func TestSinkAdapterAnyReturn(t *testing.T) {
	a := NewSinkAdapter(anyHandler{v: "Lobby2"})
	got, err := a.OnGetAppName()
	require.NoError(t, err)
	assert.Equal(t, "Lobby2", got)

	a = NewSinkAdapter(anyHandler{v: 3.14})
	_, err = a.OnGetAppName()
	var cerr *ConversionError
	require.ErrorAs(t, err, &cerr)

	a = NewSinkAdapter(anyHandler{v: nil})
	_, err = a.OnGetAppName()
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, errNilValue)
}

type eagerProxyHandler struct{}

func (eagerProxyHandler) OnPromptToInputUserNamePasswordForProxyServer(host string, port uint32, description string) bool {
	return true
}

func TestSinkAdapterProxyPromptAlwaysDeclines(t *testing.T) {
	for _, handler := range []any{nil, emptyHandler{}, fullHandler{}, eagerProxyHandler{}} {
		a := NewSinkAdapter(handler)
		ok, err := a.OnPromptToInputUserNamePasswordForProxyServer("proxy.corp", 3128, "corp proxy")
		require.NoError(t, err)
		assert.False(t, ok)
	}
}
