package gesture

import (
	"sync"
	"testing"
)

func TestEventQueueClosedRejects(t *testing.T) {
	var q eventQueue
	if q.push(bridgeEvent{id: 1}) {
		t.Error("push to a never-opened queue succeeded")
	}
	q.reset(4)
	if !q.push(bridgeEvent{id: 1}) {
		t.Error("push to open queue failed")
	}
	q.close()
	if q.push(bridgeEvent{id: 2}) {
		t.Error("push after close succeeded")
	}
	if got, _ := q.drain(nil); len(got) != 0 {
		t.Errorf("close kept %d events", len(got))
	}
}

func TestEventQueueDropsNewestWhenFull(t *testing.T) {
	var q eventQueue
	q.reset(3)
	for i := 0; i < 5; i++ {
		q.push(bridgeEvent{id: i})
	}
	got, dropped := q.drain(nil)
	if len(got) != 3 || dropped != 2 {
		t.Fatalf("drained %d, dropped %d; want 3, 2", len(got), dropped)
	}
	for i, ev := range got {
		if ev.id != i {
			t.Errorf("event %d has id %d", i, ev.id)
		}
	}

	got, dropped = q.drain(got)
	if len(got) != 0 || dropped != 0 {
		t.Errorf("second drain: %d events, %d dropped", len(got), dropped)
	}
}

func TestEventQueueKeepsLiftWhenFull(t *testing.T) {
	var q eventQueue
	q.reset(3)
	q.push(bridgeEvent{kind: TouchBegin, id: 1})
	q.push(bridgeEvent{kind: TouchMove, id: 2})
	q.push(bridgeEvent{kind: TouchMove, id: 1})
	if q.push(bridgeEvent{kind: TouchMove, id: 1}) {
		t.Error("move accepted by a full queue")
	}
	// Replaces the buffered move of the same contact.
	if !q.push(bridgeEvent{kind: TouchEnd, id: 1}) {
		t.Fatal("end dropped")
	}
	// No move of contact 3 is buffered; the move of contact 2 goes.
	if !q.push(bridgeEvent{kind: TouchCancel, id: 3}) {
		t.Fatal("cancel dropped")
	}

	got, dropped := q.drain(nil)
	want := []struct {
		kind TouchEventKind
		id   int
	}{{TouchBegin, 1}, {TouchEnd, 1}, {TouchCancel, 3}}
	if len(got) != len(want) || dropped != 3 {
		t.Fatalf("drained %+v, dropped %d", got, dropped)
	}
	for i, w := range want {
		if got[i].kind != w.kind || got[i].id != w.id {
			t.Errorf("event %d = %v/%d, want %v/%d", i, got[i].kind, got[i].id, w.kind, w.id)
		}
	}
}

func TestEventQueueLiftHeadroom(t *testing.T) {
	var q eventQueue
	q.reset(2)
	q.push(bridgeEvent{kind: TouchBegin, id: 1})
	q.push(bridgeEvent{kind: TouchBegin, id: 2})
	if q.push(bridgeEvent{kind: TouchBegin, id: 3}) {
		t.Error("begin accepted by a full queue")
	}
	for id := 1; id <= MaxTouchPoints; id++ {
		if !q.push(bridgeEvent{kind: TouchEnd, id: id}) {
			t.Fatalf("end %d dropped", id)
		}
	}
	if q.push(bridgeEvent{kind: TouchEnd, id: 99}) {
		t.Error("end accepted past the headroom")
	}
	if q.push(bridgeEvent{host: true, kind: TouchEnd}) {
		t.Error("host event treated as a lift")
	}
}

func TestEventQueueConcurrentProducers(t *testing.T) {
	var q eventQueue
	q.reset(1000)

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.push(bridgeEvent{id: p*100 + i})
			}
		}(p)
	}
	wg.Wait()

	got, dropped := q.drain(nil)
	if len(got) != 400 || dropped != 0 {
		t.Errorf("drained %d, dropped %d; want 400, 0", len(got), dropped)
	}
}

func TestEngineBridgeFromGoroutines(t *testing.T) {
	e, clk := newTestEngine(DefaultConfig())

	var wg sync.WaitGroup
	for id := 0; id < MaxTouchPoints; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			e.OnTouchEvent(TouchBegin, id, float64(id), 0, 1, e.Now())
		}(id)
	}
	wg.Wait()
	clk.step(e, frameTime)

	if e.ActiveTouchCount() != MaxTouchPoints {
		t.Errorf("ActiveTouchCount = %d, want %d", e.ActiveTouchCount(), MaxTouchPoints)
	}
}
