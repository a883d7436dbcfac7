package keyboard

import "time"

// DefaultShowDelay is how long a text field must keep focus before the
// keyboard opens on its own.
const DefaultShowDelay = 300 * time.Millisecond

// Ticket identifies one pending show. It is only honored while it is the
// latest ticket issued.
type Ticket struct {
	gen uint64
}

// AutoShow opens the keyboard once a text field has held focus for the show
// delay. The host owns the timer: it calls Focus, waits Delay, then Fire.
type AutoShow struct {
	im      *InputMethod
	delay   time.Duration
	gen     uint64
	pending bool
}

// NewAutoShow schedules shows for im. A non-positive delay uses
// DefaultShowDelay.
func NewAutoShow(im *InputMethod, delay time.Duration) *AutoShow {
	if delay <= 0 {
		delay = DefaultShowDelay
	}
	return &AutoShow{im: im, delay: delay}
}

// Delay returns the show delay
func (a *AutoShow) Delay() time.Duration { return a.delay }

// Pending reports whether a show is armed
func (a *AutoShow) Pending() bool { return a.pending }

// Focus arms a pending show, replacing any earlier one.
func (a *AutoShow) Focus() Ticket {
	a.gen++
	a.pending = true
	return Ticket{gen: a.gen}
}

// Blur cancels the pending show, if any.
func (a *AutoShow) Blur() {
	a.gen++
	a.pending = false
}

// Fire shows the keyboard if t is still the armed ticket.
func (a *AutoShow) Fire(t Ticket) bool {
	if !a.pending || t.gen != a.gen {
		return false
	}
	a.pending = false
	a.im.Show()
	return true
}
