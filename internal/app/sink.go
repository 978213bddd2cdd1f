package app

import (
	"github.com/roomctl/zrcbridge/internal/config"
	"github.com/roomctl/zrcbridge/zrc"
)

// sinkHandler answers the vendor's identity queries from configuration.
// Unset fields fall back to the binding defaults here rather than via
// method absence, since the full set of callbacks is always implemented.
type sinkHandler struct {
	cfg config.SinkConfig
}

func newSinkHandler(cfg config.SinkConfig) *sinkHandler {
	return &sinkHandler{cfg: cfg}
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func (h *sinkHandler) OnGetDeviceManufacturer() string {
	return orDefault(h.cfg.Manufacturer, zrc.DefaultDeviceManufacturer)
}

func (h *sinkHandler) OnGetDeviceModel() string {
	return orDefault(h.cfg.Model, zrc.DefaultDeviceModel)
}

func (h *sinkHandler) OnGetDeviceSerialNumber() string {
	return orDefault(h.cfg.SerialNumber, zrc.DefaultDeviceSerialNumber)
}

func (h *sinkHandler) OnGetDeviceMacAddress() string {
	return orDefault(h.cfg.MacAddress, zrc.DefaultDeviceMacAddress)
}

func (h *sinkHandler) OnGetDeviceIP() string {
	return orDefault(h.cfg.DeviceIP, zrc.DefaultDeviceIP)
}

func (h *sinkHandler) OnGetFirmwareVersion() string {
	return orDefault(h.cfg.FirmwareVer, zrc.DefaultFirmwareVersion)
}

func (h *sinkHandler) OnGetAppName() string {
	return orDefault(h.cfg.AppName, zrc.DefaultAppName)
}

func (h *sinkHandler) OnGetAppVersion() string {
	return orDefault(h.cfg.AppVersion, zrc.DefaultAppVersion)
}

func (h *sinkHandler) OnGetAppDeveloper() string {
	return orDefault(h.cfg.AppDeveloper, zrc.DefaultAppDeveloper)
}

func (h *sinkHandler) OnGetAppContact() string {
	return orDefault(h.cfg.AppContact, zrc.DefaultAppContact)
}

func (h *sinkHandler) OnGetAppContentDirPath() string {
	return orDefault(h.cfg.ContentDir, zrc.DefaultAppContentDirPath)
}
