// Package wlancore implements the request-dispatch and event-distribution
// core of an 802.11 WLAN driver that mediates between an operating-system
// network stack and a vendor firmware providing MAC-layer services. This
// file wires the pieces together into the single top-level Device an
// OS-facing adapter constructs and drives.
package wlancore

import (
	"github.com/nxpfmac/wlancore/internal/client"
	"github.com/nxpfmac/wlancore/internal/dataplane"
	"github.com/nxpfmac/wlancore/internal/events"
	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/keyring"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/scanner"
	"github.com/nxpfmac/wlancore/internal/softap"
)

// Device owns the collaborators shared across every interface: one
// MlanAdapter, one ioctl adapter, one event handler, and one data plane.
// Each configured interface owns its own Scanner, client connection or
// soft-AP, and key ring, all holding non-owning references into the
// Device's shared state.
type Device struct {
	adapter mlan.MlanAdapter
	bus     mlan.Bus
	netdev  mlan.NetDevice

	ioctlAdapter *ioctl.Adapter
	eventHandler *events.Handler
	dataPlane    *dataplane.DataPlane

	logger *logging.Logger
}

// NewDevice constructs a Device driving the given firmware adapter, bus,
// and network device.
func NewDevice(adapter mlan.MlanAdapter, bus mlan.Bus, netdev mlan.NetDevice) *Device {
	d := &Device{
		adapter:      adapter,
		bus:          bus,
		netdev:       netdev,
		ioctlAdapter: ioctl.New(adapter, bus),
		eventHandler: events.NewHandler(),
		logger:       logging.Default(),
	}
	d.dataPlane = dataplane.New(adapter, bus, netdev)
	bus.OnMlanRegistered(adapter)
	return d
}

// Init brings the firmware up: registers the mlan adapter, downloads and
// initializes the firmware image through it, and notifies the bus once
// firmware is ready to service requests.
func (d *Device) Init() error {
	if err := d.adapter.Register(); err != nil {
		return WrapError("Init", err)
	}
	if err := d.adapter.DownloadFirmware(); err != nil {
		return WrapError("Init", err)
	}
	if err := d.adapter.InitFirmware(); err != nil {
		return WrapError("Init", err)
	}
	d.bus.OnFirmwareInitialized()
	return nil
}

// OnInterrupt forwards a device interrupt to firmware and rings the bus's
// main-process doorbell so firmware drains whatever the interrupt signaled.
// Bus IRQ glue calls this from the IRQ-derived worker.
func (d *Device) OnInterrupt(msgID uint32) {
	d.adapter.Interrupt(msgID)
	d.bus.TriggerMainProcess()
}

// IoctlAdapter returns the shared ioctl adapter, for callers building their
// own interface-scoped components.
func (d *Device) IoctlAdapter() *ioctl.Adapter { return d.ioctlAdapter }

// EventHandler returns the shared event handler.
func (d *Device) EventHandler() *events.Handler { return d.eventHandler }

// DataPlane returns the shared data plane dispatch.
func (d *Device) DataPlane() *dataplane.DataPlane { return d.dataPlane }

// OnIoctlComplete forwards a firmware completion callback to the ioctl
// adapter. Bus/firmware glue code (out of this module's scope) calls this
// from the IRQ-derived worker.
func (d *Device) OnIoctlComplete(req *mlan.Request, status mlan.IoctlStatus) {
	d.ioctlAdapter.OnIoctlComplete(req, status)
}

// OnEvent forwards a firmware-originated event to the event handler.
func (d *Device) OnEvent(e events.Event) {
	d.eventHandler.OnEvent(e)
}

// Close shuts the firmware down and tears down the Device's shared
// collaborators. Interfaces must be closed first by the caller; Device does
// not own interface lifetimes. Firmware shutdown failures are logged, not
// reported, since the device is going away regardless.
func (d *Device) Close() {
	d.dataPlane.Close()
	d.ioctlAdapter.Close()
	if err := d.adapter.ShutdownFirmware(); err != nil {
		d.logger.Warn("firmware shutdown failed during close", "error", err)
	}
	if err := d.adapter.Unregister(); err != nil {
		d.logger.Warn("mlan unregister failed during close", "error", err)
	}
}

// Mode selects whether a configured Interface runs as a client station or
// a soft access point.
type Mode int

const (
	ModeClient Mode = iota
	ModeSoftAP
)

// Interface bundles one configured BSS's per-interface components: a
// scanner, a key ring, and either a client connection or a soft-AP
// controller depending on Mode.
type Interface struct {
	BSSIndex int
	Mode     Mode

	Scanner *scanner.Scanner
	KeyRing *keyring.KeyRing
	Client  *client.ClientConnection
	SoftAp  *softap.SoftAp
}

// NewInterface configures a new interface at bssIndex in the given mode,
// wiring its components to the Device's shared ioctl adapter and event
// handler and registering it with the data plane for EAPOL demultiplexing.
func (d *Device) NewInterface(bssIndex int, mode Mode, ifc mlan.FullmacIfc) *Interface {
	i := &Interface{
		BSSIndex: bssIndex,
		Mode:     mode,
		Scanner:  scanner.New(d.ioctlAdapter, d.eventHandler, ifc, bssIndex),
		KeyRing:  keyring.New(d.ioctlAdapter, bssIndex),
	}
	switch mode {
	case ModeClient:
		i.Client = client.New(d.ioctlAdapter, bssIndex)
	case ModeSoftAP:
		i.SoftAp = softap.New(d.ioctlAdapter, d.eventHandler, ifc, bssIndex)
	}
	d.dataPlane.RegisterInterface(bssIndex, ifc)
	return i
}

// Close tears down the interface's components in dependency order: the
// connection/soft-AP and scanner first (they may still have in-flight
// firmware callbacks to quiesce), then the key ring's implicit key
// cleanup, then the data plane registration.
func (i *Interface) Close(d *Device) {
	if i.Client != nil {
		i.Client.Close()
	}
	if i.SoftAp != nil {
		i.SoftAp.Close()
	}
	i.Scanner.Close()
	i.KeyRing.Close()
	d.dataPlane.UnregisterInterface(i.BSSIndex)
}
