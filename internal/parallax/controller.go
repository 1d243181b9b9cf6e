package parallax

import "reflect"

// ScrollSource reports a vertical scroll offset. Negative values are
// overscroll past the top.
type ScrollSource interface {
	ScrollOffset() float64
}

// Controller observes a scroll container and keeps Params current.
type Controller struct {
	sizer     *Sizer
	window    ScrollSource
	container ScrollSource
	reduced   bool
	params    Params
}

// NewController creates a controller that falls back to window when no
// container is observed.
func NewController(sizer *Sizer, window ScrollSource, reducedMotion bool) *Controller {
	c := &Controller{sizer: sizer, window: window, reduced: reducedMotion}
	c.params = Map(0, float64(sizer.Height()), reducedMotion)
	return c
}

// Observe switches to a scroll container. nil, including a nil pointer
// wrapped in the interface, means the window scroll.
func (c *Controller) Observe(container ScrollSource) {
	if isNilSource(container) {
		container = nil
	}
	c.container = container
}

func isNilSource(src ScrollSource) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Resize forwards a container width change to the sizer.
func (c *Controller) Resize(width int) {
	c.sizer.Resize(width)
}

// ImageLoaded forwards the image's natural size to the sizer.
func (c *Controller) ImageLoaded(w, h int) {
	c.sizer.SetNaturalSize(w, h)
}

// Aspect returns the sizer's aspect mode.
func (c *Controller) Aspect() AspectRatio {
	return c.sizer.Aspect()
}

// Height returns the current hero height.
func (c *Controller) Height() int {
	return c.sizer.Height()
}

// Update reads the scroll offset and recomputes Params.
func (c *Controller) Update() Params {
	src := c.container
	if src == nil {
		src = c.window
	}
	var offset float64
	if src != nil {
		offset = src.ScrollOffset()
	}
	c.params = Map(offset, float64(c.sizer.Height()), c.reduced)
	return c.params
}

// Params returns the values from the last Update.
func (c *Controller) Params() Params {
	return c.params
}
