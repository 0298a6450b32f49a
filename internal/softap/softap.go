// Package softap implements the soft-AP controller: BSS start/stop and
// station join/leave event surfacing for an interface running as an
// access point rather than a client.
package softap

import (
	"bytes"
	"sync"

	"github.com/nxpfmac/wlancore/internal/constants"
	"github.com/nxpfmac/wlancore/internal/events"
	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/wlerr"
)

// StartParams describes the BSS a Start call should bring up.
type StartParams struct {
	SSID    []byte
	Channel uint8
}

// StopParams names the BSS a Stop call should tear down. Stop fails without
// modifying state if SSID does not byte-compare equal to the started SSID.
type StopParams struct {
	SSID []byte
}

// SoftAp drives one interface's access-point lifecycle.
type SoftAp struct {
	bssIndex int
	adapter  *ioctl.Adapter
	ifc      mlan.FullmacIfc
	logger   *logging.Logger

	mu      sync.Mutex
	started bool
	ssid    []byte

	onStaConnect    *events.Registration
	onStaDisconnect *events.Registration
}

// New constructs a SoftAp bound to bssIndex, subscribing to station
// connect/disconnect events on handler.
func New(adapter *ioctl.Adapter, handler *events.Handler, ifc mlan.FullmacIfc, bssIndex int) *SoftAp {
	s := &SoftAp{
		bssIndex: bssIndex,
		adapter:  adapter,
		ifc:      ifc,
		logger:   logging.Default().WithInterface(bssIndex),
	}
	s.onStaConnect = handler.RegisterInterface(events.EventUapFwStaConnect, bssIndex, s.handleStaConnect)
	s.onStaDisconnect = handler.RegisterInterface(events.EventUapFwStaDisconnect, bssIndex, s.handleStaDisconnect)
	return s
}

// Start brings up a BSS with the given ssid/channel. All ioctls issued are
// synchronous: GET current BSS config, overlay ssid/channel/band/width, GET
// supported rates for the band and overlay them, SET BSS config, then SET
// BSS-start with host-based=true.
func (s *SoftAp) Start(params StartParams) (mlan.StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return mlan.StartResultBssAlreadyStartedOrJoined, nil
	}

	getCfg := mlan.NewRequest(mlan.ReqBSSCfg, s.bssIndex, nil)
	getCfg.Action = mlan.ActionGet
	if status := s.adapter.IssueSync(getCfg, constants.DefaultIoctlTimeout); status != mlan.StatusSuccess {
		return mlan.StartResultNotSupported, wlerr.NewInterface("Start", s.bssIndex, wlerr.CodeInternal, "couldn't get bss config")
	}
	cfg, _ := getCfg.Payload.(*mlan.BSSConfig)
	if cfg == nil {
		cfg = &mlan.BSSConfig{}
	}

	cfg.SSID = append([]byte(nil), params.SSID...)
	cfg.Channel = params.Channel
	cfg.Band = mlan.BandFromChannel(params.Channel)
	cfg.Width = 20
	cfg.HostBased = true

	getRates := mlan.NewRequest(mlan.ReqRates, s.bssIndex, &mlan.RateConfig{Band: cfg.Band})
	getRates.Action = mlan.ActionGet
	if status := s.adapter.IssueSync(getRates, constants.DefaultIoctlTimeout); status != mlan.StatusSuccess {
		return mlan.StartResultNotSupported, wlerr.NewInterface("Start", s.bssIndex, wlerr.CodeInternal, "couldn't get supported rates")
	}
	rates, _ := getRates.Payload.(*mlan.RateConfig)
	if rates != nil {
		cfg.Rates = rates.Rates
	}

	setCfg := mlan.NewRequest(mlan.ReqBSSCfg, s.bssIndex, cfg)
	if status := s.adapter.IssueSync(setCfg, constants.DefaultIoctlTimeout); status != mlan.StatusSuccess {
		return mlan.StartResultNotSupported, wlerr.NewInterface("Start", s.bssIndex, wlerr.CodeInternal, "firmware rejected bss config")
	}

	startReq := mlan.NewRequest(mlan.ReqUapBSSStart, s.bssIndex, cfg)
	status := s.adapter.IssueSync(startReq, constants.DefaultIoctlTimeout)
	switch status {
	case mlan.StatusSuccess:
		s.started = true
		s.ssid = append([]byte(nil), params.SSID...)
		return mlan.StartResultSuccess, nil
	default:
		s.logger.Warn("bss start failed", "status", status)
		return mlan.StartResultNotSupported, nil
	}
}

// Stop tears down the started BSS. Fails without modifying state if params
// names a different SSID than the one that was started.
func (s *SoftAp) Stop(params StopParams) (mlan.StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return mlan.StopResultBssAlreadyStopped, nil
	}
	if !bytes.Equal(s.ssid, params.SSID) {
		return mlan.StopResultInternalError, wlerr.NewInterface("Stop", s.bssIndex, wlerr.CodeInvalidArgs, "ssid does not match started bss")
	}

	resetReq := mlan.NewRequest(mlan.ReqUapBSSReset, s.bssIndex, nil)
	status := s.adapter.IssueSync(resetReq, constants.DefaultIoctlTimeout)
	switch status {
	case mlan.StatusSuccess:
		s.started = false
		s.ssid = nil
		return mlan.StopResultSuccess, nil
	default:
		s.logger.Warn("bss reset failed", "status", status)
		return mlan.StopResultInternalError, nil
	}
}

// Close unregisters this SoftAp's station event subscriptions.
func (s *SoftAp) Close() {
	s.onStaConnect.Unregister()
	s.onStaDisconnect.Unregister()
}

func (s *SoftAp) handleStaConnect(e events.Event) {
	if len(e.Payload) < 6 {
		s.logger.Warn("sta connect event too short", "len", len(e.Payload))
		return
	}
	var mac [6]byte
	copy(mac[:], e.Payload[:6])
	ies := e.Payload[6:]
	s.ifc.OnStaConnectEvent(mac, ies)
}

func (s *SoftAp) handleStaDisconnect(e events.Event) {
	if len(e.Payload) < 8 {
		s.logger.Warn("sta disconnect event too short", "len", len(e.Payload))
		return
	}
	reason := uint16(e.Payload[0]) | uint16(e.Payload[1])<<8
	var mac [6]byte
	copy(mac[:], e.Payload[2:8])
	s.ifc.OnStaDisconnectEvent(mac, reason)
}
