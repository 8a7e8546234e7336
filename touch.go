package gesture

import "time"

// TouchPoint is one tracked contact.
type TouchPoint struct {
	// ID identifies the contact; unique among active points.
	ID int
	// Position is the latest reported position.
	Position Vec2
	// StartPosition is where the contact began.
	StartPosition Vec2
	// PreviousPosition is the position at the start of the current frame.
	PreviousPosition Vec2
	// Pressure is the contact pressure in [0, 1].
	Pressure float64
	// StartTime is the contact's begin timestamp on the engine clock.
	StartTime time.Duration
	// Active is false for free slots.
	Active bool
}

// TouchPointStore is a fixed-capacity set of concurrently active contacts.
// Lookups are linear scans; active points keep their slot index for their
// whole lifetime. The zero value is an empty store.
type TouchPointStore struct {
	points [MaxTouchPoints]TouchPoint
	active int
}

// BeginTouch allocates the first free slot for contact id. If every slot is
// taken the contact is dropped and BeginTouch returns false; later moves and
// ends for that id are no-ops. A begin for an id that is already active
// restarts that contact in place.
func (s *TouchPointStore) BeginTouch(id int, pos Vec2, pressure float64, ts time.Duration) bool {
	i := s.find(id)
	if i < 0 {
		i = s.freeSlot()
		if i < 0 {
			return false
		}
		s.active++
	}
	s.points[i] = TouchPoint{
		ID:               id,
		Position:         pos,
		StartPosition:    pos,
		PreviousPosition: pos,
		Pressure:         clamp(pressure, 0, 1),
		StartTime:        ts,
		Active:           true,
	}
	return true
}

// MoveTouch updates the active contact id. Unknown ids are ignored.
func (s *TouchPointStore) MoveTouch(id int, pos Vec2, pressure float64) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	p := &s.points[i]
	p.Position = pos
	p.Pressure = clamp(pressure, 0, 1)
	return true
}

// EndTouch deactivates contact id and returns its final state. Unknown ids
// are ignored.
func (s *TouchPointStore) EndTouch(id int) (TouchPoint, bool) {
	i := s.find(id)
	if i < 0 {
		return TouchPoint{}, false
	}
	p := s.points[i]
	s.points[i].Active = false
	s.active--
	return p, true
}

// ActiveCount returns the number of active contacts.
func (s *TouchPointStore) ActiveCount() int {
	return s.active
}

// Point returns the slot at index i (active or not). Out-of-range indices
// return the zero TouchPoint.
func (s *TouchPointStore) Point(i int) TouchPoint {
	if i < 0 || i >= MaxTouchPoints {
		return TouchPoint{}
	}
	return s.points[i]
}

// AppendActive appends the active contacts to buf in slot order.
func (s *TouchPointStore) AppendActive(buf []TouchPoint) []TouchPoint {
	for i := range s.points {
		if s.points[i].Active {
			buf = append(buf, s.points[i])
		}
	}
	return buf
}

// Reset deactivates every contact.
func (s *TouchPointStore) Reset() {
	*s = TouchPointStore{}
}

func (s *TouchPointStore) find(id int) int {
	for i := range s.points {
		if s.points[i].Active && s.points[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TouchPointStore) freeSlot() int {
	for i := range s.points {
		if !s.points[i].Active {
			return i
		}
	}
	return -1
}

// first returns the lowest-slot active contact, or nil.
func (s *TouchPointStore) first() *TouchPoint {
	for i := range s.points {
		if s.points[i].Active {
			return &s.points[i]
		}
	}
	return nil
}

// firstTwo returns the two lowest-slot active contacts. Either may be nil.
func (s *TouchPointStore) firstTwo() (a, b *TouchPoint) {
	for i := range s.points {
		if !s.points[i].Active {
			continue
		}
		if a == nil {
			a = &s.points[i]
		} else {
			return a, &s.points[i]
		}
	}
	return a, nil
}

// markFrame records every active position as the previous-frame position.
func (s *TouchPointStore) markFrame() {
	for i := range s.points {
		if s.points[i].Active {
			s.points[i].PreviousPosition = s.points[i].Position
		}
	}
}
