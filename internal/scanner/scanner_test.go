package scanner

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nxpfmac/wlancore/internal/events"
	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/mlan"
)

// fakeFirmware is a scriptable mlan.Adapter that understands enough of the
// scan request sequence (GET channel list, SET scan, GET scan table) to
// drive the scanner end to end without a real firmware image.
type fakeFirmware struct {
	mu sync.Mutex

	channels      []uint8
	bssList       []mlan.BSSDescriptor
	scanSetStatus mlan.IoctlStatus

	scanRequests []*mlan.Request
}

func (f *fakeFirmware) Ioctl(req *mlan.Request) mlan.IoctlStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	if req == nil {
		return mlan.StatusSuccess
	}

	switch req.ReqID {
	case mlan.ReqBSSChannelList:
		req.Payload = &mlan.ChannelListResult{Channels: f.channels}
		return mlan.StatusSuccess
	case mlan.ReqScan:
		if req.Action == mlan.ActionCancel {
			return mlan.StatusCanceled
		}
		f.scanRequests = append(f.scanRequests, req)
		return f.scanSetStatus
	case mlan.ReqScanTable:
		req.Payload = &mlan.ScanTableResult{BSSList: f.bssList}
		return mlan.StatusSuccess
	default:
		return mlan.StatusSuccess
	}
}

type fakeFullmac struct {
	mu       sync.Mutex
	results  []mlan.ScanResult
	endTxnID uint64
	endCode  string
	endCalls int
}

func (f *fakeFullmac) OnScanResult(result mlan.ScanResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

func (f *fakeFullmac) OnScanEnd(txnID uint64, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endTxnID = txnID
	f.endCode = code
	f.endCalls++
}

func (f *fakeFullmac) OnConnectConfirm(status uint16, ies []byte)          {}
func (f *fakeFullmac) OnStaConnectEvent(mac [6]byte, ies []byte)           {}
func (f *fakeFullmac) OnStaDisconnectEvent(mac [6]byte, reasonCode uint16) {}
func (f *fakeFullmac) OnEapolTransmitted(frame []byte, status error)       {}
func (f *fakeFullmac) OnEapolReceived(frame []byte)                        {}

func waitForCondition(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}

// TestScanWithNoResults is Scenario A: a scan whose table comes back empty
// dispatches no scan-result callbacks and exactly one Success scan-end.
func TestScanWithNoResults(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}, scanSetStatus: mlan.StatusPending}
	fullmac := &fakeFullmac{}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, fullmac, 0)
	defer s.Close()

	const txnID = 0x234776898ADF83
	err := s.Scan(Request{TxnID: txnID, ScanType: mlan.ScanTypeActive}, time.Second)
	require.NoError(t, err)

	fw.mu.Lock()
	req := fw.scanRequests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusSuccess)

	h.OnEvent(events.Event{ID: events.EventDrvScanReport, BSSIndex: 0})

	waitForCondition(t, func() bool {
		fullmac.mu.Lock()
		defer fullmac.mu.Unlock()
		return fullmac.endCalls == 1
	})

	fullmac.mu.Lock()
	defer fullmac.mu.Unlock()
	require.Empty(t, fullmac.results)
	require.Equal(t, uint64(txnID), fullmac.endTxnID)
	require.Equal(t, string(mlan.ScanResultSuccess), fullmac.endCode)
}

// TestScanWithOneResult is Scenario B.
func TestScanWithOneResult(t *testing.T) {
	bss := mlan.BSSDescriptor{
		BSSID:          [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
		Channel:        11,
		RSSI:           40,
		BeaconPeriod:   100,
		CapabilityInfo: 0x31,
		ChannelWidth:   6,
		BeaconBuf:      make([]byte, 32),
	}
	fw := &fakeFirmware{channels: []uint8{11}, scanSetStatus: mlan.StatusPending, bssList: []mlan.BSSDescriptor{bss}}
	fullmac := &fakeFullmac{}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, fullmac, 0)
	defer s.Close()

	const txnID = 0x234776898ADF83
	err := s.Scan(Request{TxnID: txnID, ScanType: mlan.ScanTypeActive}, time.Second)
	require.NoError(t, err)

	fw.mu.Lock()
	req := fw.scanRequests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusSuccess)

	h.OnEvent(events.Event{ID: events.EventDrvScanReport, BSSIndex: 0})

	waitForCondition(t, func() bool {
		fullmac.mu.Lock()
		defer fullmac.mu.Unlock()
		return fullmac.endCalls == 1
	})

	fullmac.mu.Lock()
	defer fullmac.mu.Unlock()
	require.Len(t, fullmac.results, 1)
	require.Equal(t, bss.BSSID, fullmac.results[0].BSSID)
	require.EqualValues(t, 11, fullmac.results[0].ChannelPrimary)
	require.EqualValues(t, -40, fullmac.results[0].RSSIDbm)
	require.Len(t, fullmac.results[0].IEs, 20)
	require.Equal(t, txnID, int(fullmac.endTxnID))
	require.Equal(t, string(mlan.ScanResultSuccess), fullmac.endCode)
}

func TestScanRejectsTooManySSIDs(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, &fakeFullmac{}, 0)
	defer s.Close()

	ssids := make([][]byte, 11)
	for i := range ssids {
		ssids[i] = []byte("ssid")
	}
	err := s.Scan(Request{SSIDs: ssids, ScanType: mlan.ScanTypeActive}, time.Second)
	require.Error(t, err)
}

func TestScanRejectsTooManyChannels(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, &fakeFullmac{}, 0)
	defer s.Close()

	channels := make([]uint8, 51)
	err := s.Scan(Request{Channels: channels, ScanType: mlan.ScanTypeActive}, time.Second)
	require.Error(t, err)
}

func TestSecondScanWhileInProgressReturnsAlreadyExists(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}, scanSetStatus: mlan.StatusPending}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, &fakeFullmac{}, 0)

	require.NoError(t, s.Scan(Request{ScanType: mlan.ScanTypeActive}, time.Second))
	err := s.Scan(Request{ScanType: mlan.ScanTypeActive}, time.Second)
	require.Error(t, err)

	fw.mu.Lock()
	req := fw.scanRequests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusCanceled)
	s.Close()
}

func TestStopScanWithNoScanInProgressReturnsNotFound(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, &fakeFullmac{}, 0)
	defer s.Close()

	require.Error(t, s.StopScan())
}

func TestStopScanCancelsAndDispatchesCanceledEnd(t *testing.T) {
	fw := &fakeFirmware{channels: []uint8{11}, scanSetStatus: mlan.StatusPending}
	fullmac := &fakeFullmac{}
	a := ioctl.New(fw, nil)
	defer a.Close()
	h := events.NewHandler()
	s := New(a, h, fullmac, 0)
	defer s.Close()

	require.NoError(t, s.Scan(Request{ScanType: mlan.ScanTypeActive}, time.Second))
	require.NoError(t, s.StopScan())

	fw.mu.Lock()
	req := fw.scanRequests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusCanceled)

	waitForCondition(t, func() bool {
		fullmac.mu.Lock()
		defer fullmac.mu.Unlock()
		return fullmac.endCalls == 1
	})

	fullmac.mu.Lock()
	defer fullmac.mu.Unlock()
	require.Equal(t, string(mlan.ScanResultCanceledByDriverOrFW), fullmac.endCode)
}
