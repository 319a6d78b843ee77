package stage

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/playpen"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Handler ---

// PointerHandler receives the single active drag. Only one pointer owns the
// drag at a time; a press from another pointer takes it over and fires a
// fresh PointerDown.
type PointerHandler interface {
	PointerDown(p playpen.Vec2)
	PointerMove(p playpen.Vec2)
	PointerUp(p playpen.Vec2)
}

// --- Per-pointer state ---

type pointerState struct {
	down bool
	last playpen.Vec2
}

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	pos     playpen.Vec2
	pressed bool
}

// Pointer turns ebiten mouse and touch state into down/move/up calls on a
// PointerHandler. Synthetic events queued with Inject* take priority over
// real input, one per Update.
type Pointer struct {
	handler  PointerHandler
	pointers [maxPointers]pointerState
	owner    int // pointer slot owning the drag, -1 when idle

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// NewPointer creates a pointer router feeding h.
func NewPointer(h PointerHandler) *Pointer {
	return &Pointer{handler: h, owner: -1}
}

// Dragging reports whether some pointer currently owns the drag.
func (pt *Pointer) Dragging() bool { return pt.owner >= 0 }

// Update processes one frame of input.
func (pt *Pointer) Update() {
	if pt.processInjectedInput() {
		return
	}
	pt.processMousePointer()
	pt.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (pt *Pointer) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	pt.processPointer(0, playpen.Vec2{X: float64(mx), Y: float64(my)}, pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (pt *Pointer) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(pt.prevTouchIDs[:0])
	pt.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := pt.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		pt.processPointer(slot, playpen.Vec2{X: float64(tx), Y: float64(ty)}, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if pt.touchUsed[i] && !activeSlots[i] {
			ps := &pt.pointers[i]
			if ps.down {
				pt.processPointer(i, ps.last, false)
			}
			pt.touchUsed[i] = false
			pt.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (pt *Pointer) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if pt.touchUsed[i] && pt.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !pt.touchUsed[i] {
			pt.touchUsed[i] = true
			pt.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (pt *Pointer) processPointer(id int, p playpen.Vec2, pressed bool) {
	ps := &pt.pointers[id]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.last = p
		pt.owner = id
		pt.handler.PointerDown(p)
	case !pressed && ps.down:
		ps.down = false
		ps.last = p
		if pt.owner == id {
			pt.owner = -1
			pt.handler.PointerUp(p)
		}
	case pressed && ps.down:
		if p != ps.last && pt.owner == id {
			pt.handler.PointerMove(p)
		}
		ps.last = p
	default:
		ps.last = p
	}
}

// --- Injection ---

// InjectPress queues a press at p. Consumed on the next Update.
func (pt *Pointer) InjectPress(p playpen.Vec2) {
	pt.injectQueue = append(pt.injectQueue, syntheticPointerEvent{pos: p, pressed: true})
}

// InjectMove queues a move to p with the button held.
func (pt *Pointer) InjectMove(p playpen.Vec2) {
	pt.injectQueue = append(pt.injectQueue, syntheticPointerEvent{pos: p, pressed: true})
}

// InjectRelease queues a release at p.
func (pt *Pointer) InjectRelease(p playpen.Vec2) {
	pt.injectQueue = append(pt.injectQueue, syntheticPointerEvent{pos: p, pressed: false})
}

// InjectPath queues a full drag through points: a press at the first, a
// move per intermediate point, and a release at the last. Consumes
// len(points) frames.
func (pt *Pointer) InjectPath(points []playpen.Vec2) {
	if len(points) == 0 {
		return
	}
	pt.InjectPress(points[0])
	for i := 1; i < len(points)-1; i++ {
		pt.InjectMove(points[i])
	}
	pt.InjectRelease(points[len(points)-1])
}

// Pending returns the number of queued synthetic events.
func (pt *Pointer) Pending() int { return len(pt.injectQueue) }

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as the mouse. Returns true if an event was
// consumed (real input is skipped that frame).
func (pt *Pointer) processInjectedInput() bool {
	if len(pt.injectQueue) == 0 {
		return false
	}
	evt := pt.injectQueue[0]
	copy(pt.injectQueue, pt.injectQueue[1:])
	pt.injectQueue = pt.injectQueue[:len(pt.injectQueue)-1]

	pt.processPointer(0, evt.pos, evt.pressed)
	return true
}
