// Package reorder turns a pointer-drag gesture over a vertical list into a
// new task order.
//
// The controller knows nothing about rendering. The presentation layer hands
// it the displayed items in visual order, each with a height, and the
// vertical position where the list starts. Item positions are derived by
// stacking heights from that origin, so rearranging the visual order moves
// the items just as a re-laid-out list would.
package reorder

// Item is one displayed row.
type Item struct {
	ID     int
	Height float64
}

// Orderer receives the final order when a gesture ends.
type Orderer interface {
	SetOrder(ids []int) (bool, error)
}

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller tracks a single drag gesture.
type Controller struct {
	target  Orderer
	state   State
	dragged int
	origin  float64
	items   []Item
	initial []Item
}

// New returns an idle controller that commits drops to target.
func New(target Orderer) *Controller {
	return &Controller{target: target}
}

// State returns the current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// DraggedID returns the id of the item being dragged.
func (c *Controller) DraggedID() (int, bool) {
	if c.state != Dragging {
		return 0, false
	}
	return c.dragged, true
}

// Order returns the ids in the current visual order. While idle it is the
// order of the last gesture.
func (c *Controller) Order() []int {
	ids := make([]int, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Begin starts dragging id over items, laid out from origin.
// It returns false, leaving the controller idle, when id is not displayed
// or when no other item is there to reorder against.
func (c *Controller) Begin(id int, items []Item, origin float64) bool {
	if c.state == Dragging {
		c.Cancel()
	}
	if len(items) < 2 || indexOf(items, id) < 0 {
		return false
	}

	c.items = append([]Item(nil), items...)
	c.initial = append([]Item(nil), items...)
	c.dragged = id
	c.origin = origin
	c.state = Dragging
	return true
}

// Move recomputes the insertion point for a pointer at vertical position y
// and rearranges the visual order. The dragged item is placed before the
// first other item whose midpoint is at or below y, or at the end when there
// is none. Move reports whether the visual order changed.
func (c *Controller) Move(y float64) bool {
	if c.state != Dragging {
		return false
	}

	from := indexOf(c.items, c.dragged)
	dragged := c.items[from]

	// Positions come from the current layout, dragged item included.
	before := -1
	top := c.origin
	for _, it := range c.items {
		mid := top + it.Height/2
		top += it.Height
		if it.ID == c.dragged {
			continue
		}
		if mid >= y {
			before = it.ID
			break
		}
	}

	rest := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != c.dragged {
			rest = append(rest, it)
		}
	}

	next := make([]Item, 0, len(c.items))
	placed := false
	for _, it := range rest {
		if it.ID == before {
			next = append(next, dragged)
			placed = true
		}
		next = append(next, it)
	}
	if !placed {
		next = append(next, dragged)
	}

	to := indexOf(next, c.dragged)
	c.items = next
	return to != from
}

// Drop ends the gesture and hands the visual order to the Orderer.
// It returns the committed order, or nil when no gesture was active.
func (c *Controller) Drop() ([]int, error) {
	if c.state != Dragging {
		return nil, nil
	}
	order := c.Order()
	c.reset()
	if c.target == nil {
		return order, nil
	}
	if _, err := c.target.SetOrder(order); err != nil {
		return order, err
	}
	return order, nil
}

// Cancel ends the gesture without committing, restoring the visual order
// from before Begin.
func (c *Controller) Cancel() {
	if c.state != Dragging {
		return
	}
	c.items = c.initial
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.dragged = 0
	c.initial = nil
}

func indexOf(items []Item, id int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
