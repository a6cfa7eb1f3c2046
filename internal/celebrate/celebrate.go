// Package celebrate picks the decorative animation played when the last
// pending item is checked off.
package celebrate

import (
	"math/rand"
	"time"

	"github.com/sandeepkv93/selesai/internal/model"
)

type Style int

const (
	StyleBounce Style = iota
	StyleShimmy
	StyleShake
)

// Property is the visual property a style animates.
type Property string

const (
	PropertyScale  Property = "scale"
	PropertyX      Property = "x"
	PropertyRotate Property = "rotate"
)

type styleDef struct {
	name      string
	property  Property
	keyframes []float64
	duration  time.Duration
	stagger   time.Duration
}

var styles = map[Style]styleDef{
	StyleBounce: {name: "bounce", property: PropertyScale, keyframes: []float64{1, 1.25, 1}, duration: 350 * time.Millisecond, stagger: 75 * time.Millisecond},
	StyleShimmy: {name: "shimmy", property: PropertyX, keyframes: []float64{0, 2, -2, 0}, duration: 500 * time.Millisecond, stagger: 75 * time.Millisecond},
	StyleShake:  {name: "shake", property: PropertyRotate, keyframes: []float64{0, 10, -10, 0}, duration: 500 * time.Millisecond, stagger: 100 * time.Millisecond},
}

func (s Style) def() styleDef {
	if def, ok := styles[s]; ok {
		return def
	}
	return styles[StyleBounce]
}

func (s Style) String() string          { return s.def().name }
func (s Style) Property() Property      { return s.def().property }
func (s Style) Keyframes() []float64    { return append([]float64(nil), s.def().keyframes...) }
func (s Style) Duration() time.Duration { return s.def().duration }
func (s Style) Stagger() time.Duration  { return s.def().stagger }
func (s Style) Rest() float64           { return s.def().keyframes[0] }

// StyleFor maps a uniform draw in [0,1) onto one of the three styles with
// equal probability.
func StyleFor(r float64) Style {
	switch {
	case r < 1.0/3.0:
		return StyleBounce
	case r < 2.0/3.0:
		return StyleShimmy
	default:
		return StyleShake
	}
}

// BoundaryIndex locates the item that completed the list: the first unchecked
// item of the list as it was before the toggle. When every item was already
// checked it falls back to the last index, and an empty list anchors at 0.
func BoundaryIndex(before []model.Item) int {
	if len(before) == 0 {
		return 0
	}
	for i, item := range before {
		if !item.Checked {
			return i
		}
	}
	return len(before) - 1
}

// Plan describes one celebration run across Count checkboxes.
type Plan struct {
	Seq       uint64
	Style     Style
	Anchor    int
	AnchorID  int
	Count     int
	StartedAt time.Time
}

// Reanchor maps the plan onto a rendered sequence of n checkboxes whose anchor
// sits at row. Rows outside the sequence clamp to its ends.
func (p Plan) Reanchor(row, n int) Plan {
	if n <= 0 {
		n = 1
	}
	if row < 0 {
		row = 0
	}
	if row >= n {
		row = n - 1
	}
	p.Anchor = row
	p.Count = n
	return p
}

// Delay is how long item i waits before it starts animating. Items nearer
// the anchor go first.
func (p Plan) Delay(i int) time.Duration {
	dist := i - p.Anchor
	if dist < 0 {
		dist = -dist
	}
	return time.Duration(dist) * p.Style.Stagger()
}

// Total is the time from start until the last item settles.
func (p Plan) Total() time.Duration {
	far := p.Anchor
	if last := p.Count - 1 - p.Anchor; last > far {
		far = last
	}
	if far < 0 {
		far = 0
	}
	return time.Duration(far)*p.Style.Stagger() + p.Style.Duration()
}

func (p Plan) Done(elapsed time.Duration) bool {
	return elapsed >= p.Total()
}

// Sample returns the animated property value for item i at elapsed time since
// the plan started. Outside the item's window it returns the rest value.
func (p Plan) Sample(i int, elapsed time.Duration) float64 {
	d := p.Style.def()
	local := elapsed - p.Delay(i)
	if local <= 0 || local >= d.duration {
		return d.keyframes[0]
	}
	progress := float64(local) / float64(d.duration)
	segments := len(d.keyframes) - 1
	pos := progress * float64(segments)
	seg := int(pos)
	if seg >= segments {
		return d.keyframes[segments]
	}
	frac := pos - float64(seg)
	from, to := d.keyframes[seg], d.keyframes[seg+1]
	return from + (to-from)*frac
}

type Trigger struct {
	rand func() float64
	now  func() time.Time
	seq  uint64
}

func NewTrigger(src rand.Source) *Trigger {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	r := rand.New(src)
	return &Trigger{rand: r.Float64, now: time.Now}
}

// Evaluate fires when after is non-empty and every item in it is checked.
// before is the list as it was prior to the toggle and anchors the stagger.
func (t *Trigger) Evaluate(before, after []model.Item) (Plan, bool) {
	if !model.AllChecked(after) {
		return Plan{}, false
	}
	t.seq++
	anchor := BoundaryIndex(before)
	if anchor >= len(after) {
		anchor = len(after) - 1
	}
	return Plan{
		Seq:       t.seq,
		Style:     StyleFor(t.rand()),
		Anchor:    anchor,
		AnchorID:  after[anchor].ID,
		Count:     len(after),
		StartedAt: t.now(),
	}, true
}
