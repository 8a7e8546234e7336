package gesture

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenPlatform samples ebiten's touch state once per frame and forwards
// the differences as touch events. It must be polled from the ebiten Update
// goroutine, which [Engine.Update] does when called from Game.Update.
type EbitenPlatform struct {
	ids      []ebiten.TouchID
	pressed  []ebiten.TouchID
	released []ebiten.TouchID
	last     map[ebiten.TouchID]Vec2
	cursor   image.Point
}

// NewEbitenPlatform creates an EbitenPlatform.
func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{last: make(map[ebiten.TouchID]Vec2, MaxTouchPoints)}
}

// Name returns "ebiten".
func (p *EbitenPlatform) Name() string { return "ebiten" }

// BeginPlatform implements Platform. Ebiten needs no registration.
func (p *EbitenPlatform) BeginPlatform(Bridge) error {
	if p.last == nil {
		p.last = make(map[ebiten.TouchID]Vec2, MaxTouchPoints)
	}
	p.cursor = image.Pt(ebiten.CursorPosition())
	return nil
}

// EndPlatform implements Platform.
func (p *EbitenPlatform) EndPlatform() {
	clear(p.last)
}

// Poll implements Poller.
func (p *EbitenPlatform) Poll(b Bridge) {
	now := b.Now()

	p.pressed = inpututil.AppendJustPressedTouchIDs(p.pressed[:0])
	for _, id := range p.pressed {
		x, y := ebiten.TouchPosition(id)
		pos := Vec2{float64(x), float64(y)}
		p.last[id] = pos
		b.OnTouchEvent(TouchBegin, int(id), pos.X, pos.Y, 1, now)
	}

	p.ids = ebiten.AppendTouchIDs(p.ids[:0])
	for _, id := range p.ids {
		x, y := ebiten.TouchPosition(id)
		pos := Vec2{float64(x), float64(y)}
		if last, ok := p.last[id]; ok && last != pos {
			p.last[id] = pos
			b.OnTouchEvent(TouchMove, int(id), pos.X, pos.Y, 1, now)
		}
	}

	p.released = inpututil.AppendJustReleasedTouchIDs(p.released[:0])
	for _, id := range p.released {
		pos, ok := p.last[id]
		if !ok {
			continue
		}
		delete(p.last, id)
		b.OnTouchEvent(TouchEnd, int(id), pos.X, pos.Y, 0, now)
	}

	// Mouse activity with no finger down switches to pointer mode.
	if len(p.ids) == 0 && len(p.released) == 0 {
		c := image.Pt(ebiten.CursorPosition())
		if c != p.cursor || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			b.OnPointerInput()
		}
		p.cursor = c
	}
}
