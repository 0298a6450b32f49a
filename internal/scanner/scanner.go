// Package scanner orchestrates asynchronous network discovery: constructing
// a firmware user-scan configuration, dispatching it, and synthesizing
// fullmac-style scan results from the firmware's scan table once results
// are ready.
package scanner

import (
	"sync"
	"time"

	"github.com/nxpfmac/wlancore/internal/constants"
	"github.com/nxpfmac/wlancore/internal/events"
	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/waitable"
	"github.com/nxpfmac/wlancore/internal/wlerr"
)

// Request is the caller-facing description of a scan to perform.
type Request struct {
	TxnID          uint64
	ScanType       mlan.ScanType
	SSIDs          [][]byte
	Channels       []uint8
	MinChannelTime uint32
}

// Scanner drives scans for a single interface. The zero value is not usable;
// construct with New.
type Scanner struct {
	bssIndex int
	adapter  *ioctl.Adapter
	ifc      mlan.FullmacIfc
	logger   *logging.Logger

	mu          sync.Mutex
	scanRequest *mlan.Request
	txnID       uint64

	scanInProgress  *waitable.State[bool]
	ioctlInProgress *waitable.State[bool]

	onScanReport *events.Registration
}

// New constructs a Scanner bound to bssIndex, issuing requests through
// adapter and dispatching results to ifc. It registers for the interface's
// scan-report event on handler.
func New(adapter *ioctl.Adapter, handler *events.Handler, ifc mlan.FullmacIfc, bssIndex int) *Scanner {
	s := &Scanner{
		bssIndex:        bssIndex,
		adapter:         adapter,
		ifc:             ifc,
		logger:          logging.Default().WithInterface(bssIndex),
		scanInProgress:  waitable.NewState(false),
		ioctlInProgress: waitable.NewState(false),
	}
	s.onScanReport = handler.RegisterInterface(events.EventDrvScanReport, bssIndex, func(events.Event) {
		s.handleScanReportEvent()
	})
	return s
}

// Scan starts a scan, returning AlreadyExists if one is already in progress.
// Results are reported to ifc one at a time, followed by exactly one
// scan-end.
func (s *Scanner) Scan(req Request, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scanInProgress.Get() {
		return wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeAlreadyExists, "scan already in progress")
	}

	scanReq, err := s.prepareScanRequest(req)
	if err != nil {
		return err
	}

	s.ioctlInProgress.Set(true)
	result := s.adapter.IssueAsync(scanReq, func(status mlan.IoctlStatus) {
		s.onScanIoctlComplete(status)
	}, timeout)

	if result != ioctl.IssuePending {
		s.ioctlInProgress.Set(false)
		return wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeInternal, "scan ioctl did not return pending")
	}

	s.scanRequest = scanReq
	s.txnID = req.TxnID
	s.scanInProgress.Set(true)
	return nil
}

// StopScan cancels an in-progress scan. The on-scan-end callback fires
// asynchronously with CanceledByDriverOrFirmware.
func (s *Scanner) StopScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanInProgress.Get() {
		return wlerr.NewInterface("StopScan", s.bssIndex, wlerr.CodeNotFound, "no scan in progress")
	}
	if !s.cancelScanIoctlLocked() {
		return wlerr.NewInterface("StopScan", s.bssIndex, wlerr.CodeNotFound, "failed to cancel scan ioctl")
	}
	return nil
}

// Close stops any ongoing scan and blocks until all in-flight firmware
// callbacks touching this Scanner have quiesced, mirroring the teardown
// order a destructor would enforce. The scan-report subscription stays
// registered until the waits return: unregistering first could strand a
// scan whose ioctl already completed but whose report event is still on
// its way.
func (s *Scanner) Close() {
	_ = s.StopScan()
	s.scanInProgress.Wait(func(v bool) bool { return !v })
	s.ioctlInProgress.Wait(func(v bool) bool { return !v })
	s.onScanReport.Unregister()
}

func (s *Scanner) prepareScanRequest(req Request) (*mlan.Request, error) {
	if len(req.SSIDs) > constants.MaxSSIDList {
		return nil, wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeInvalidArgs, "too many SSIDs requested")
	}
	if len(req.Channels) > constants.MaxUserScanChan {
		return nil, wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeInvalidArgs, "too many channels requested")
	}

	var scanType mlan.ScanType
	switch req.ScanType {
	case mlan.ScanTypeActive, mlan.ScanTypePassive:
		scanType = req.ScanType
	default:
		return nil, wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeInvalidArgs, "invalid scan type requested")
	}

	getChannels := mlan.NewRequest(mlan.ReqBSSChannelList, s.bssIndex, nil)
	getChannels.Action = mlan.ActionGet
	status := s.adapter.IssueSync(getChannels, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		return nil, wlerr.NewInterface("Scan", s.bssIndex, wlerr.CodeInternal, "couldn't get channels")
	}
	supported, _ := getChannels.Payload.(*mlan.ChannelListResult)
	if supported == nil {
		supported = &mlan.ChannelListResult{}
	}

	cfg := &mlan.ScanConfig{ExtScanType: constants.ExtScanEnhance}

	for _, ssid := range req.SSIDs {
		n := len(ssid)
		if n > constants.MaxSSIDLength {
			n = constants.MaxSSIDLength
		}
		cfg.SSIDs = append(cfg.SSIDs, append([]byte(nil), ssid[:n]...))
	}

	if len(req.Channels) > 0 {
		supportedSet := make(map[uint8]bool, len(supported.Channels))
		for _, c := range supported.Channels {
			supportedSet[c] = true
		}
		for _, ch := range req.Channels {
			if supportedSet[ch] {
				cfg.Channels = append(cfg.Channels, populateScanChannel(ch, scanType, req.MinChannelTime))
			}
		}
	} else {
		for i, ch := range supported.Channels {
			if i >= constants.MaxUserScanChan {
				break
			}
			cfg.Channels = append(cfg.Channels, populateScanChannel(ch, scanType, req.MinChannelTime))
		}
	}

	r := mlan.NewRequest(mlan.ReqScan, s.bssIndex, cfg)
	return r, nil
}

func populateScanChannel(channel uint8, scanType mlan.ScanType, channelTime uint32) mlan.ScanChannel {
	effective := scanType
	if mlan.IsDFSChannel(channel) && scanType == mlan.ScanTypeActive {
		effective = mlan.ScanTypePassiveToActive
	}
	return mlan.ScanChannel{
		Number:     channel,
		ScanType:   effective,
		Radio:      mlan.BandFromChannel(channel),
		ScanTimeMs: channelTime,
	}
}

func (s *Scanner) handleScanReportEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scanInProgress.Get() {
		s.logger.Warn("received scan report event but no scan in progress")
		return
	}
	s.fetchAndProcessScanResultsLocked(mlan.ScanResultSuccess)
}

func (s *Scanner) onScanIoctlComplete(status mlan.IoctlStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.ioctlInProgress.Set(false)

	switch status {
	case mlan.StatusSuccess:
		// Results arrive through the scan-report event handler.
		return
	case mlan.StatusTimeout:
		s.logger.Warn("scan timed out")
		s.fetchAndProcessScanResultsLocked(mlan.ScanResultCanceledByDriverOrFW)
		return
	case mlan.StatusCanceled:
		if s.scanInProgress.Get() {
			s.endScanLocked(mlan.ScanResultCanceledByDriverOrFW)
		}
		return
	default:
		s.logger.Warn("scan ioctl failed", "status", status)
		if s.scanInProgress.Get() {
			s.endScanLocked(mlan.ScanResultInternalError)
		}
	}
}

func (s *Scanner) fetchAndProcessScanResultsLocked(result mlan.ScanEndCode) {
	scanTable := mlan.NewRequest(mlan.ReqScanTable, s.bssIndex, nil)
	scanTable.Action = mlan.ActionGet
	status := s.adapter.IssueSync(scanTable, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		s.logger.Warn("failed to get scan results", "status", status)
		s.endScanLocked(mlan.ScanResultInternalError)
		return
	}
	s.processScanResultsLocked(scanTable, result)
}

func (s *Scanner) processScanResultsLocked(scanTable *mlan.Request, result mlan.ScanEndCode) {
	resp, _ := scanTable.Payload.(*mlan.ScanTableResult)
	if resp == nil {
		resp = &mlan.ScanTableResult{}
	}

	for _, bss := range resp.BSSList {
		// Firmware reports signal strength as a positive attenuation value;
		// negate and clamp into the dBm range the fullmac result carries.
		rssi := -int16(bss.RSSI)
		if rssi > 0 {
			rssi = 0
		}
		if rssi < -128 {
			rssi = -128
		}

		var ies []byte
		if len(bss.BeaconBuf) > constants.BeaconPrefixLen {
			ies = bss.BeaconBuf[constants.BeaconPrefixLen:]
		}

		s.ifc.OnScanResult(mlan.ScanResult{
			TxnID:          s.txnID,
			TimestampNanos: time.Now().UnixNano(),
			BSSID:          bss.BSSID,
			BSSType:        "Infrastructure",
			BeaconPeriod:   bss.BeaconPeriod,
			CapabilityInfo: bss.CapabilityInfo,
			IEs:            ies,
			ChannelPrimary: bss.Channel,
			ChannelWidth:   bss.ChannelWidth,
			RSSIDbm:        int8(rssi),
		})
	}

	s.endScanLocked(result)
}

func (s *Scanner) cancelScanIoctlLocked() bool {
	if s.scanRequest == nil {
		return false
	}
	return s.adapter.Cancel(s.scanRequest)
}

func (s *Scanner) endScanLocked(result mlan.ScanEndCode) {
	s.ifc.OnScanEnd(s.txnID, string(result))
	s.scanInProgress.Set(false)
}
