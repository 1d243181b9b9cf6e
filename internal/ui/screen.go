package ui

import "github.com/hajimehoshi/ebiten/v2"

// Screen is the interface for all UI screens (Grid, Hero).
type Screen interface {
	// Update handles input and logic. Return a non-nil ScreenTransition to change screens.
	Update() (*ScreenTransition, error)
	// Draw renders the screen.
	Draw(dst *ebiten.Image)
	// OnEnter is called when the screen becomes active.
	OnEnter()
	// OnExit is called when the screen is removed.
	OnExit()
	// Name returns the screen name for debugging.
	Name() string
}

// Overlay is implemented by screens that draw on top of the screen below
// them instead of replacing it, like the modal hero drawer.
type Overlay interface {
	IsOverlay() bool
}

// Debuggable screens contribute lines to the debug overlay.
type Debuggable interface {
	DebugLines() []string
}

type TransitionType int

const (
	TransitionPush TransitionType = iota
	TransitionPop
	TransitionReplace
)

type ScreenTransition struct {
	Type   TransitionType
	Screen Screen // nil for Pop
}

// ScreenManager manages a stack of screens.
type ScreenManager struct {
	stack []Screen
}

func NewScreenManager() *ScreenManager {
	return &ScreenManager{}
}

func (sm *ScreenManager) Push(s Screen) {
	sm.stack = append(sm.stack, s)
	s.OnEnter()
}

func (sm *ScreenManager) Pop() {
	if len(sm.stack) == 0 {
		return
	}
	top := sm.stack[len(sm.stack)-1]
	top.OnExit()
	sm.stack = sm.stack[:len(sm.stack)-1]
	if len(sm.stack) > 0 {
		sm.stack[len(sm.stack)-1].OnEnter()
	}
}

func (sm *ScreenManager) Replace(s Screen) {
	if len(sm.stack) > 0 {
		top := sm.stack[len(sm.stack)-1]
		top.OnExit()
		sm.stack[len(sm.stack)-1] = s
	} else {
		sm.stack = append(sm.stack, s)
	}
	s.OnEnter()
}

// ClearStack exits and removes all screens from the stack.
func (sm *ScreenManager) ClearStack() {
	for len(sm.stack) > 0 {
		top := sm.stack[len(sm.stack)-1]
		top.OnExit()
		sm.stack = sm.stack[:len(sm.stack)-1]
	}
}

func (sm *ScreenManager) Current() Screen {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

func (sm *ScreenManager) Update() error {
	s := sm.Current()
	if s == nil {
		return nil
	}

	tr, err := s.Update()
	if err != nil {
		return err
	}
	sm.apply(tr)
	return nil
}

func (sm *ScreenManager) apply(tr *ScreenTransition) {
	if tr == nil {
		return
	}
	switch tr.Type {
	case TransitionPush:
		sm.Push(tr.Screen)
	case TransitionPop:
		sm.Pop()
	case TransitionReplace:
		sm.Replace(tr.Screen)
	}
}

// Draw renders the top screen. Overlays also draw every screen beneath them,
// down to the first one that is not an overlay.
func (sm *ScreenManager) Draw(dst *ebiten.Image) {
	for _, s := range sm.visible() {
		s.Draw(dst)
	}
}

// visible returns the screens to draw, bottom first.
func (sm *ScreenManager) visible() []Screen {
	if len(sm.stack) == 0 {
		return nil
	}
	base := len(sm.stack) - 1
	for base > 0 && isOverlay(sm.stack[base]) {
		base--
	}
	return sm.stack[base:]
}

func isOverlay(s Screen) bool {
	o, ok := s.(Overlay)
	return ok && o.IsOverlay()
}

func (sm *ScreenManager) StackSize() int {
	return len(sm.stack)
}
