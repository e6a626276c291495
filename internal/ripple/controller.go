package ripple

import "sync"

// State of the render loop.
type State int

const (
	Idle    State = iota // no work scheduled
	Running              // ticking every display refresh
)

// Controller drives the particle system only while there is something to
// animate. It goes Running on the first spawn and drops back to Idle on the
// exact tick the collection empties, so an idle scene costs nothing per
// frame beyond the state check. Spawns arrive from the input thread while
// Step and Draw run on the display thread, so the collection is
// mutex-guarded.
type Controller struct {
	mu    sync.Mutex
	sys   System
	state State
}

func NewController() *Controller { return &Controller{} }

// Spawn adds a ripple and wakes the loop if it was idle. Safe from any
// goroutine.
func (c *Controller) Spawn(x, y, hue float64) {
	c.mu.Lock()
	c.sys.Spawn(x, y, hue)
	c.state = Running
	c.mu.Unlock()
}

// Step runs one animation tick. It returns true while the loop should keep
// being driven; once the last ripple expires the controller cancels itself.
func (c *Controller) Step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return false
	}
	if !c.sys.Tick() {
		c.state = Idle
		return false
	}
	return true
}

// State reports whether the loop is currently scheduled.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Len returns the number of live ripples.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sys.Len()
}

// Reset clears all particles and idles the loop immediately.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.sys.Clear()
	c.state = Idle
	c.mu.Unlock()
}
