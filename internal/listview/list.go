// Package listview reconciles successive visible item sequences into a set of
// animated row elements keyed by item id.
package listview

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
	"github.com/sandeepkv93/selesai/internal/model"
)

type Phase int

const (
	PhaseEntering Phase = iota
	PhasePresent
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseExiting:
		return "exiting"
	default:
		return "present"
	}
}

const settleEpsilon = 0.01

// Layout springs settle in roughly two seconds; fades in a few hundred ms.
const (
	layoutFrequency = 3.0
	layoutDamping   = 0.7
	fadeFrequency   = 12.0
	fadeDamping     = 1.0
)

type element struct {
	item  model.Item
	phase Phase

	y, vy, targetY             float64
	opacity, vo, targetOpacity float64
	height, vh, targetHeight   float64
}

func (e *element) settled() bool {
	return near(e.y, e.targetY, e.vy) && near(e.opacity, e.targetOpacity, e.vo) && near(e.height, e.targetHeight, e.vh)
}

func (e *element) snap() {
	e.y, e.vy = e.targetY, 0
	e.opacity, e.vo = e.targetOpacity, 0
	e.height, e.vh = e.targetHeight, 0
}

func near(pos, target, vel float64) bool {
	return math.Abs(pos-target) < settleEpsilon && math.Abs(vel) < settleEpsilon
}

// Row is one element as it should be drawn on the current frame.
type Row struct {
	Item    model.Item
	Phase   Phase
	Y       float64
	Opacity float64
	Height  float64
}

// Visible reports whether the row occupies a line at all this frame.
func (r Row) Visible() bool {
	return r.Height >= 0.5 && r.Opacity > settleEpsilon
}

type Diff struct {
	Entered []int
	Exited  []int
	Moved   []int
}

func (d Diff) Empty() bool {
	return len(d.Entered) == 0 && len(d.Exited) == 0 && len(d.Moved) == 0
}

type List struct {
	elements map[int]*element
	layout   harmonica.Spring
	fade     harmonica.Spring
	animate  bool
	primed   bool
}

// New builds a list stepping at fps frames per second. With animate false
// every reconcile lands on its final state immediately.
func New(fps int, animate bool) *List {
	if fps <= 0 {
		fps = 60
	}
	return &List{
		elements: make(map[int]*element),
		layout:   harmonica.NewSpring(harmonica.FPS(fps), layoutFrequency, layoutDamping),
		fade:     harmonica.NewSpring(harmonica.FPS(fps), fadeFrequency, fadeDamping),
		animate:  animate,
	}
}

// Reconcile diffs visible against the current elements. The first reconcile
// never animates so a hydrated list appears at rest.
func (l *List) Reconcile(visible []model.Item) Diff {
	var diff Diff
	present := make(map[int]struct{}, len(visible))
	for i, item := range visible {
		present[item.ID] = struct{}{}
		target := float64(i)
		el, ok := l.elements[item.ID]
		if !ok {
			l.elements[item.ID] = &element{
				item:          item,
				phase:         PhaseEntering,
				y:             target,
				targetY:       target,
				targetOpacity: 1,
				targetHeight:  1,
			}
			diff.Entered = append(diff.Entered, item.ID)
			continue
		}
		el.item = item
		if el.phase == PhaseExiting {
			el.phase = PhasePresent
			el.targetOpacity = 1
			diff.Entered = append(diff.Entered, item.ID)
		}
		if el.targetY != target {
			el.targetY = target
			diff.Moved = append(diff.Moved, item.ID)
		}
	}
	for id, el := range l.elements {
		if _, ok := present[id]; ok || el.phase == PhaseExiting {
			continue
		}
		el.phase = PhaseExiting
		el.targetOpacity = 0
		diff.Exited = append(diff.Exited, id)
	}
	sort.Ints(diff.Entered)
	sort.Ints(diff.Exited)
	sort.Ints(diff.Moved)

	if !l.animate || !l.primed {
		l.Settle()
	}
	l.primed = true
	return diff
}

// Step advances every element by one frame and reports whether anything is
// still in motion.
func (l *List) Step() bool {
	animating := false
	for id, el := range l.elements {
		el.y, el.vy = l.layout.Update(el.y, el.vy, el.targetY)
		el.opacity, el.vo = l.fade.Update(el.opacity, el.vo, el.targetOpacity)
		el.height, el.vh = l.fade.Update(el.height, el.vh, el.targetHeight)
		if el.settled() {
			el.snap()
			switch el.phase {
			case PhaseEntering:
				el.phase = PhasePresent
			case PhaseExiting:
				delete(l.elements, id)
				continue
			}
		} else {
			animating = true
		}
	}
	return animating
}

// Settle jumps every element to its target and drops exited ones.
func (l *List) Settle() {
	for id, el := range l.elements {
		if el.phase == PhaseExiting {
			delete(l.elements, id)
			continue
		}
		el.snap()
		el.phase = PhasePresent
	}
}

func (l *List) Animating() bool {
	for _, el := range l.elements {
		if el.phase != PhasePresent || !el.settled() {
			return true
		}
	}
	return false
}

func (l *List) Len() int { return len(l.elements) }

// Rows returns the elements ordered by their animated position. Ties keep
// the settled order, and newer items go first among equals.
func (l *List) Rows() []Row {
	rows := make([]Row, 0, len(l.elements))
	for _, el := range l.elements {
		rows = append(rows, Row{
			Item:    el.item,
			Phase:   el.phase,
			Y:       el.y,
			Opacity: clamp01(el.opacity),
			Height:  clamp01(el.height),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Y != rows[j].Y {
			return rows[i].Y < rows[j].Y
		}
		return rows[i].Item.ID > rows[j].Item.ID
	})
	return rows
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
