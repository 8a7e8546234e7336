package gesture

import (
	"testing"
	"time"
)

func TestInjectTap(t *testing.T) {
	e, clk := newTestEngine(DefaultConfig())
	e.InjectTap(50, 50)
	if len(e.inject.queue) != 2 {
		t.Fatalf("expected 2 queued batches, got %d", len(e.inject.queue))
	}

	// Frame 1: touch down
	clk.step(e, frameTime)
	if len(e.inject.queue) != 1 {
		t.Fatalf("expected 1 remaining batch after frame 1, got %d", len(e.inject.queue))
	}
	if e.ActiveTouchCount() != 1 {
		t.Errorf("expected 1 active touch, got %d", e.ActiveTouchCount())
	}
	pts := e.TouchPoints(nil)
	if pts[0].ID <= injectIDBase {
		t.Errorf("synthetic id %d overlaps platform ids", pts[0].ID)
	}

	// Frame 2: touch up, tap fires
	clk.step(e, frameTime)
	if e.InjectPending() {
		t.Fatal("inject queue not drained")
	}
	if g := e.Gesture(); g.Kind != GestureTap || g.Position != (Vec2{50, 50}) {
		t.Errorf("expected tap at (50,50), got %v at %v", g.Kind, g.Position)
	}
}

func TestInjectDoubleTap(t *testing.T) {
	e, clk := newTestEngine(DefaultConfig())
	e.InjectDoubleTap(80, 80)
	if len(e.inject.queue) != 4 {
		t.Fatalf("expected 4 queued batches, got %d", len(e.inject.queue))
	}
	for i := 0; i < 4; i++ {
		clk.step(e, frameTime)
	}
	if g := e.Gesture(); g.Kind != GestureDoubleTap {
		t.Errorf("expected double-tap, got %v", g.Kind)
	}
}

func TestInjectDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmitDrag = true
	e, clk := newTestEngine(cfg)

	// Drag from (10,10) to (200,10) over 5 frames:
	// frame 0: down at (10,10)
	// frames 1-3: moves at 1/4, 2/4, 3/4
	// frame 4: move to (200,10) and up
	e.InjectDrag(10, 10, 200, 10, 5)
	if len(e.inject.queue) != 5 {
		t.Fatalf("expected 5 queued batches, got %d", len(e.inject.queue))
	}

	var phases []Phase
	e.OnGesture(func(g GestureState) {
		if g.Kind == GestureDrag {
			phases = append(phases, g.Phase)
		}
	})
	for i := 0; i < 5; i++ {
		clk.step(e, frameTime)
	}
	if e.ActiveTouchCount() != 0 {
		t.Errorf("expected no active touches, got %d", e.ActiveTouchCount())
	}
	if len(phases) == 0 || phases[0] != PhaseBegan || phases[len(phases)-1] != PhaseEnded {
		t.Errorf("unexpected drag phases %v", phases)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	e, _ := newTestEngine(DefaultConfig())
	e.InjectDrag(0, 0, 10, 10, 0)
	if len(e.inject.queue) != 2 {
		t.Errorf("expected 2 batches for minimum drag, got %d", len(e.inject.queue))
	}
}

func TestInjectTwoFingerMinFrames(t *testing.T) {
	e, _ := newTestEngine(DefaultConfig())
	e.InjectPan(0, 0, 10, 10, 1)
	if len(e.inject.queue) != 3 {
		t.Errorf("expected 3 batches for minimum pan, got %d", len(e.inject.queue))
	}
	head := e.inject.queue[0]
	if len(head.events) != 2 || head.events[0].id == head.events[1].id {
		t.Errorf("expected two distinct fingers down, got %+v", head.events)
	}
}

func TestInjectPanMovesViewport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableInertia = false
	e, clk := newTestEngine(cfg)
	e.InjectPan(100, 100, 160, 130, 5)
	for i := 0; i < 5; i++ {
		clk.step(e, frameTime)
	}
	if got := e.PanOffset(); !approxEqual(got.X, 60, 1e-9) || !approxEqual(got.Y, 30, 1e-9) {
		t.Errorf("expected pan offset (60,30), got %v", got)
	}
}

func TestInjectLongPressHolds(t *testing.T) {
	e, clk := newTestEngine(DefaultConfig())
	e.InjectLongPress(20, 20, 200*time.Millisecond)

	clk.step(e, frameTime)
	if e.ActiveTouchCount() != 1 {
		t.Fatal("touch not down after frame 1")
	}
	// Held until 200ms of engine time have passed since the release batch
	// reached the head of the queue.
	for i := 0; i < 13; i++ {
		clk.step(e, frameTime)
		if e.ActiveTouchCount() != 1 {
			t.Fatalf("touch released early at frame %d", i+2)
		}
	}
	clk.step(e, frameTime)
	if e.ActiveTouchCount() != 0 || e.InjectPending() {
		t.Errorf("expected release after hold, touches=%d pending=%v",
			e.ActiveTouchCount(), e.InjectPending())
	}
}

func TestInjectUsesFrameTimestamp(t *testing.T) {
	e, clk := newTestEngine(DefaultConfig())
	clk.now = 5 * time.Second
	e.InjectTap(1, 1)
	clk.step(e, frameTime)
	if p := e.TouchPoints(nil)[0]; p.StartTime != 5*time.Second+frameTime {
		t.Errorf("expected StartTime %v, got %v", 5*time.Second+frameTime, p.StartTime)
	}
}
