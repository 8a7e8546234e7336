package gesture

import (
	"testing"
	"time"
)

func TestTouchStoreBeginMoveEnd(t *testing.T) {
	var s TouchPointStore

	if !s.BeginTouch(7, Vec2{10, 20}, 0.5, 3*time.Millisecond) {
		t.Fatal("BeginTouch returned false on empty store")
	}
	if s.ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d, want 1", s.ActiveCount())
	}
	p := s.Point(0)
	if p.ID != 7 || !p.Active {
		t.Fatalf("slot 0 = %+v", p)
	}
	if p.StartPosition != (Vec2{10, 20}) || p.PreviousPosition != (Vec2{10, 20}) {
		t.Errorf("start/previous = %v/%v, want (10,20)", p.StartPosition, p.PreviousPosition)
	}
	if p.StartTime != 3*time.Millisecond {
		t.Errorf("StartTime = %v, want 3ms", p.StartTime)
	}

	if !s.MoveTouch(7, Vec2{30, 40}, 0.8) {
		t.Fatal("MoveTouch returned false for active id")
	}
	p = s.Point(0)
	if p.Position != (Vec2{30, 40}) || p.StartPosition != (Vec2{10, 20}) {
		t.Errorf("after move: %+v", p)
	}
	if p.Pressure != 0.8 {
		t.Errorf("Pressure = %v, want 0.8", p.Pressure)
	}

	end, ok := s.EndTouch(7)
	if !ok {
		t.Fatal("EndTouch returned false for active id")
	}
	if end.Position != (Vec2{30, 40}) {
		t.Errorf("ended point position = %v", end.Position)
	}
	if s.ActiveCount() != 0 || s.Point(0).Active {
		t.Error("point still active after EndTouch")
	}
}

func TestTouchStoreUnknownIDs(t *testing.T) {
	var s TouchPointStore
	s.BeginTouch(1, Vec2{}, 1, 0)

	if s.MoveTouch(2, Vec2{5, 5}, 1) {
		t.Error("MoveTouch on unknown id returned true")
	}
	if _, ok := s.EndTouch(2); ok {
		t.Error("EndTouch on unknown id returned true")
	}
	if s.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", s.ActiveCount())
	}
	if s.Point(0).Position != (Vec2{}) {
		t.Error("unknown id move changed an active point")
	}
}

func TestTouchStoreCapacity(t *testing.T) {
	var s TouchPointStore
	for i := 0; i < MaxTouchPoints; i++ {
		if !s.BeginTouch(i, Vec2{float64(i), 0}, 1, 0) {
			t.Fatalf("BeginTouch(%d) failed below capacity", i)
		}
	}
	if s.BeginTouch(100, Vec2{}, 1, 0) {
		t.Error("11th BeginTouch returned true")
	}
	if s.ActiveCount() != MaxTouchPoints {
		t.Errorf("ActiveCount = %d, want %d", s.ActiveCount(), MaxTouchPoints)
	}
	// The dropped contact stays unknown.
	if s.MoveTouch(100, Vec2{1, 1}, 1) {
		t.Error("move of dropped contact returned true")
	}
	if _, ok := s.EndTouch(100); ok {
		t.Error("end of dropped contact returned true")
	}
}

func TestTouchStoreSlotReuse(t *testing.T) {
	var s TouchPointStore
	s.BeginTouch(1, Vec2{}, 1, 0)
	s.BeginTouch(2, Vec2{}, 1, 0)
	s.EndTouch(1)
	s.BeginTouch(3, Vec2{9, 9}, 1, 0)

	if got := s.Point(0).ID; got != 3 {
		t.Errorf("slot 0 ID = %d, want 3 (first inactive slot)", got)
	}
	if got := s.Point(1).ID; got != 2 {
		t.Errorf("slot 1 ID = %d, want 2", got)
	}
}

func TestTouchStoreDuplicateBeginRestarts(t *testing.T) {
	var s TouchPointStore
	s.BeginTouch(4, Vec2{1, 1}, 1, 0)
	s.MoveTouch(4, Vec2{50, 50}, 1)
	s.BeginTouch(4, Vec2{2, 2}, 1, time.Second)

	if s.ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d, want 1", s.ActiveCount())
	}
	p := s.Point(0)
	if p.StartPosition != (Vec2{2, 2}) || p.StartTime != time.Second {
		t.Errorf("restarted point = %+v", p)
	}
}

func TestTouchStorePressureClamped(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -1, 0},
		{"in range", 0.25, 0.25},
		{"above one", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s TouchPointStore
			s.BeginTouch(1, Vec2{}, tt.in, 0)
			if got := s.Point(0).Pressure; got != tt.want {
				t.Errorf("Pressure = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTouchStoreMarkFrame(t *testing.T) {
	var s TouchPointStore
	s.BeginTouch(1, Vec2{0, 0}, 1, 0)
	s.MoveTouch(1, Vec2{5, 0}, 1)
	if s.Point(0).PreviousPosition != (Vec2{0, 0}) {
		t.Fatal("move changed PreviousPosition")
	}
	s.markFrame()
	if s.Point(0).PreviousPosition != (Vec2{5, 0}) {
		t.Errorf("PreviousPosition = %v, want (5,0)", s.Point(0).PreviousPosition)
	}
}

func TestTouchStoreAppendActiveAndFirstTwo(t *testing.T) {
	var s TouchPointStore
	s.BeginTouch(1, Vec2{}, 1, 0)
	s.BeginTouch(2, Vec2{}, 1, 0)
	s.BeginTouch(3, Vec2{}, 1, 0)
	s.EndTouch(1)

	got := s.AppendActive(nil)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("AppendActive = %+v", got)
	}
	a, b := s.firstTwo()
	if a == nil || b == nil || a.ID != 2 || b.ID != 3 {
		t.Errorf("firstTwo = %v, %v", a, b)
	}
	if s.Point(-1).Active || s.Point(MaxTouchPoints).Active {
		t.Error("out-of-range Point returned an active point")
	}

	s.Reset()
	if s.ActiveCount() != 0 || s.first() != nil {
		t.Error("Reset left active points")
	}
}
