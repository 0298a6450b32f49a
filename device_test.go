package wlancore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nxpfmac/wlancore/internal/client"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/mocksim"
)

func newTestDevice() (*Device, *mocksim.MlanAdapter, *mocksim.Bus, *mocksim.NetDevice) {
	adapter := mocksim.NewMlanAdapter()
	bus := mocksim.NewBus()
	netdev := mocksim.NewNetDevice()
	d := NewDevice(adapter, bus, netdev)
	return d, adapter, bus, netdev
}

// registeringBus records the adapter NewDevice hands to OnMlanRegistered.
type registeringBus struct {
	*mocksim.Bus
	registered mlan.MlanAdapter
}

func (b *registeringBus) OnMlanRegistered(adapter mlan.MlanAdapter) { b.registered = adapter }

func TestNewDeviceRegistersWithBus(t *testing.T) {
	adapter := mocksim.NewMlanAdapter()
	bus := &registeringBus{Bus: mocksim.NewBus()}
	NewDevice(adapter, bus, mocksim.NewNetDevice())
	require.Same(t, adapter, bus.registered)
}

func TestInitBringsFirmwareUp(t *testing.T) {
	d, _, _, _ := newTestDevice()
	require.NoError(t, d.Init())
}

func TestOnInterruptForwardsToFirmwareAndRingsDoorbell(t *testing.T) {
	d, mockAdapter, bus, _ := newTestDevice()

	var gotMsgID uint32
	mockAdapter.OnInterrupt = func(msgID uint32) { gotMsgID = msgID }

	d.OnInterrupt(7)

	require.Equal(t, uint32(7), gotMsgID)
	require.Equal(t, 1, bus.TriggerMainProcessCalls)
}

func TestNewInterfaceClientMode(t *testing.T) {
	d, _, _, _ := newTestDevice()
	ifc := mocksim.NewFullmacIfc()

	iface := d.NewInterface(0, ModeClient, ifc)
	defer iface.Close(d)

	require.NotNil(t, iface.Client)
	require.Nil(t, iface.SoftAp)
	require.Equal(t, client.Idle, iface.Client.State())
}

func TestNewInterfaceSoftApMode(t *testing.T) {
	d, _, _, _ := newTestDevice()
	ifc := mocksim.NewFullmacIfc()

	iface := d.NewInterface(1, ModeSoftAP, ifc)
	defer iface.Close(d)

	require.NotNil(t, iface.SoftAp)
	require.Nil(t, iface.Client)
}

func TestConnectEndToEndViaMockAdapter(t *testing.T) {
	d, mockAdapter, _, _ := newTestDevice()
	ifc := mocksim.NewFullmacIfc()
	iface := d.NewInterface(0, ModeClient, ifc)
	defer iface.Close(d)

	mockAdapter.OnIoctl = func(req *mlan.Request) mlan.IoctlStatus {
		if req.ReqID == mlan.ReqBSSStart && req.Action == mlan.ActionSet {
			payload := req.Payload.(*mlan.BSSStartRequest)
			payload.AssocResp = mlan.AssocResponse{StatusCode: 0, Valid: true}
			return mlan.StatusPending
		}
		return mlan.StatusSuccess
	}

	done := make(chan struct{})
	var gotStatus uint16
	err := iface.Client.Connect(client.Request{BSSID: [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, Channel: 36}, func(status uint16, ies []byte) {
		gotStatus = status
		close(done)
	}, 0)
	require.NoError(t, err)

	require.Len(t, mockAdapter.IoctlCalls, 1)
	d.OnIoctlComplete(mockAdapter.IoctlCalls[0], mlan.StatusSuccess)
	<-done
	require.Equal(t, client.StatusCodeSuccess, gotStatus)
}
