package proxy

import (
	"context"
	"testing"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
	"stellarsiege/client/internal/instructionlist"
)

// bundleStats summarizes one received event bundle.
type bundleStats struct {
	game.NullListener
	placements int
	firstTime  battle.Time
	lastTime   battle.Time
	resyncs    int
	finish     bool
}

func (b *bundleStats) PlaceObject(side battle.Side, info battle.UnitInfo) {
	b.placements++
}

func (b *bundleStats) UpdateTime(time battle.Time, distance int32) {
	if b.firstTime == 0 {
		b.firstTime = time
	}
	b.lastTime = time
}

func (b *bundleStats) UpdateObject(side battle.Side, damage, crew, shield int) {
	b.resyncs++
}

func summarize(list *instructionlist.StringInstructionList, finish bool) *bundleStats {
	stats := &bundleStats{finish: finish}
	battle.ReplayList(list, stats)
	return stats
}

type playerHarness struct {
	ui       *dispatch.QueueDispatcher
	gameDisp *dispatch.QueueDispatcher
	session  *game.Session
	rx       *dispatch.Receiver[game.Session]
	proxy    *PlayerProxy
	bundles  []*bundleStats
}

func newPlayerHarness(t *testing.T) *playerHarness {
	t.Helper()
	h := &playerHarness{
		ui:       dispatch.NewQueueDispatcher(),
		gameDisp: dispatch.NewQueueDispatcher(),
		session:  game.NewSession(nil),
	}
	b, err := game.RecordBattle(game.SampleBattle)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}
	h.session.AddBattle(b)
	h.rx = dispatch.NewReceiver(h.gameDisp, h.session)
	h.proxy = NewPlayerProxy(h.ui, h.rx.Sender(), func(list *instructionlist.StringInstructionList, finish bool) {
		h.bundles = append(h.bundles, summarize(list, finish))
	})
	return h
}

// pump drains both dispatchers until quiescent.
func (h *playerHarness) pump() {
	for i := 0; i < 8; i++ {
		h.gameDisp.ExecuteAll()
		h.ui.ExecuteAll()
	}
}

func TestPlayerInitDeliversPlacements(t *testing.T) {
	h := newPlayerHarness(t)
	h.proxy.RequestInit(0)
	h.pump()

	if len(h.bundles) != 1 {
		t.Fatalf("expected one bundle, got %d", len(h.bundles))
	}
	b := h.bundles[0]
	if b.placements != 2 {
		t.Fatalf("init must place both units, got %d", b.placements)
	}
	if b.lastTime != 0 {
		t.Fatalf("init must not contain battle ticks, got last time %d", b.lastTime)
	}
	if b.finish {
		t.Fatalf("a battle with ticks must not finish at init")
	}
}

func TestPlayerStreamsBundlesUntilFinish(t *testing.T) {
	h := newPlayerHarness(t)
	h.proxy.RequestInit(0)
	h.proxy.RequestEvents()
	h.proxy.RequestEvents()
	h.pump()

	if len(h.bundles) != 3 {
		t.Fatalf("expected three bundles, got %d", len(h.bundles))
	}

	//1.- First event bundle covers the window below 100.
	first := h.bundles[1]
	if first.firstTime != 1 || first.lastTime != 99 {
		t.Fatalf("expected ticks 1..99, got %d..%d", first.firstTime, first.lastTime)
	}
	if first.finish {
		t.Fatalf("mid-battle bundle must not be final")
	}

	//2.- Second bundle drains the tape and signals finish.
	second := h.bundles[2]
	if second.firstTime != 100 || second.lastTime != 181 {
		t.Fatalf("expected ticks 100..181, got %d..%d", second.firstTime, second.lastTime)
	}
	if !second.finish {
		t.Fatalf("the final bundle must signal finish")
	}
}

func TestPlayerJumpResynchronizes(t *testing.T) {
	h := newPlayerHarness(t)
	h.proxy.RequestInit(0)
	h.pump()
	h.bundles = nil

	h.proxy.RequestJump(170)
	h.pump()

	if len(h.bundles) != 1 {
		t.Fatalf("expected one bundle, got %d", len(h.bundles))
	}
	b := h.bundles[0]
	if b.placements != 2 {
		t.Fatalf("jump reply must re-place both units, got %d", b.placements)
	}
	if b.resyncs != 2 {
		t.Fatalf("jump reply must resync both units, got %d", b.resyncs)
	}
	if b.firstTime != 170 || b.lastTime != 181 {
		t.Fatalf("expected ticks 170..181, got %d..%d", b.firstTime, b.lastTime)
	}
	if !b.finish {
		t.Fatalf("a jump window past the end must finish")
	}
}

func TestPlayerInitUnknownBattleFinishesEmpty(t *testing.T) {
	h := newPlayerHarness(t)
	h.proxy.RequestInit(7)
	h.pump()

	if len(h.bundles) != 1 {
		t.Fatalf("expected one bundle, got %d", len(h.bundles))
	}
	b := h.bundles[0]
	if b.placements != 0 || !b.finish {
		t.Fatalf("unknown battle must answer empty and final, got %+v", b)
	}
}

func TestPlayerCloseDropsReplies(t *testing.T) {
	h := newPlayerHarness(t)
	h.proxy.RequestInit(0)
	h.proxy.Close()
	h.pump()

	if len(h.bundles) != 0 {
		t.Fatalf("replies after close must be dropped, got %d", len(h.bundles))
	}
}

func TestPrefsLoadValues(t *testing.T) {
	ui := dispatch.NewQueueDispatcher()
	gameDisp := dispatch.NewQueueDispatcher()
	session := game.NewSession(nil)
	session.Prefs.SetValue("vcr.scheduler", "standard")
	rx := dispatch.NewReceiver(gameDisp, session)
	defer rx.Close()

	//1.- The game goroutine pumps its own dispatcher, as in production.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameDisp.Run(ctx)

	p := NewPrefsProxy(ui, rx.Sender())
	defer p.Close()

	if !p.LoadValues() {
		t.Fatalf("LoadValues against a live session must succeed")
	}
	values := p.Values()
	if len(values) != 1 || values[0].Key != "vcr.scheduler" || values[0].Value != "standard" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestPrefsChangeNotificationRefreshesCache(t *testing.T) {
	ui := dispatch.NewQueueDispatcher()
	gameDisp := dispatch.NewQueueDispatcher()
	session := game.NewSession(nil)
	rx := dispatch.NewReceiver(gameDisp, session)
	defer rx.Close()

	p := NewPrefsProxy(ui, rx.Sender())
	defer p.Close()

	changed := 0
	p.OnChange = func(items []game.PrefItem) { changed++ }

	//1.- Write through the proxy; the trampoline's listener triggers the
	// debounced notifier, which refreshes the cache on the UI side.
	p.SetValue("playback.speed", "fast")
	for i := 0; i < 8; i++ {
		gameDisp.ExecuteAll()
		ui.ExecuteAll()
	}

	if changed == 0 {
		t.Fatalf("expected a change callback")
	}
	values := p.Values()
	if len(values) != 1 || values[0].Value != "fast" {
		t.Fatalf("cache must follow the change, got %v", values)
	}
}
