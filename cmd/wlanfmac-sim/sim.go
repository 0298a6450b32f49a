package main

import (
	wlancore "github.com/nxpfmac/wlancore"
	"github.com/nxpfmac/wlancore/internal/events"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/mocksim"
)

// simChannels is the channel list the simulated firmware reports, spanning
// both 2.4 GHz and DFS-range 5 GHz channels so scan/soft-ap demos exercise
// the band and DFS classification logic.
var simChannels = []uint8{1, 6, 11, 36, 40, 52, 56, 100, 149}

// simBSS is the single scan result the simulated firmware reports,
// matching the literal values from Scenario B of the testable-properties
// section: bssid 01:02:03:04:05:06, channel 11, rssi 40 (-> -40 dBm).
var simBSS = mlan.BSSDescriptor{
	BSSID:          [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
	Channel:        11,
	RSSI:           40,
	BeaconPeriod:   100,
	CapabilityInfo: 0x0411,
	ChannelWidth:   6,
	BeaconBuf:      make([]byte, 32),
}

// newSimDevice builds a Device wired to a scripted MlanAdapter that
// behaves enough like real firmware for the demo subcommands: it answers
// channel-list/scan-table GETs, completes soft-AP BSS-config/start/reset
// and key-config SETs synchronously, completes a client connect (BSS-start)
// request asynchronously with a successful association response, and
// completes a scan request by firing the scan-report event once the
// caller's issue_async call returns.
func newSimDevice(mode wlancore.Mode, ifc mlan.FullmacIfc) (*wlancore.Device, *wlancore.Interface, *mocksim.MlanAdapter) {
	adapter := mocksim.NewMlanAdapter()
	bus := mocksim.NewBus()
	netdev := mocksim.NewNetDevice()

	device := wlancore.NewDevice(adapter, bus, netdev)

	adapter.OnIoctl = func(req *mlan.Request) mlan.IoctlStatus {
		if req == nil {
			return mlan.StatusSuccess
		}
		if req.Action == mlan.ActionCancel {
			return mlan.StatusCanceled
		}
		switch req.ReqID {
		case mlan.ReqBSSChannelList:
			req.Payload = &mlan.ChannelListResult{Channels: simChannels}
			return mlan.StatusSuccess
		case mlan.ReqScan:
			go func(r *mlan.Request) {
				device.OnIoctlComplete(r, mlan.StatusSuccess)
				device.OnEvent(events.Event{ID: events.EventDrvScanReport, BSSIndex: r.InterfaceIdx})
			}(req)
			return mlan.StatusPending
		case mlan.ReqScanTable:
			req.Payload = &mlan.ScanTableResult{BSSList: []mlan.BSSDescriptor{simBSS}}
			return mlan.StatusSuccess
		case mlan.ReqBSSStart:
			payload, _ := req.Payload.(*mlan.BSSStartRequest)
			if payload != nil {
				payload.AssocResp = mlan.AssocResponse{StatusCode: 0, Valid: true}
			}
			go func(r *mlan.Request) {
				device.OnIoctlComplete(r, mlan.StatusSuccess)
			}(req)
			return mlan.StatusPending
		case mlan.ReqBSSCfg, mlan.ReqRates, mlan.ReqUapBSSStart, mlan.ReqUapBSSReset, mlan.ReqSecCfgEncryptKey:
			if req.ReqID == mlan.ReqBSSCfg && req.Action == mlan.ActionGet {
				req.Payload = &mlan.BSSConfig{}
			}
			if req.ReqID == mlan.ReqRates && req.Action == mlan.ActionGet {
				req.Payload = &mlan.RateConfig{Rates: []byte{2, 4, 11, 22, 12, 18, 24, 36}}
			}
			return mlan.StatusSuccess
		case mlan.ReqAssociate:
			return mlan.StatusSuccess
		default:
			return mlan.StatusSuccess
		}
	}

	iface := device.NewInterface(0, mode, ifc)
	return device, iface, adapter
}
