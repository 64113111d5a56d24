package input

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"

	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/selection"
	"github.com/tsawler/overmark/textmodel"
)

// Config contains tunable parameters for pointer gesture handling.
type Config struct {
	// MultiClickTime is the maximum time between clicks for them to count
	// as one double or triple click sequence.
	MultiClickTime time.Duration

	// MultiClickDistance is the maximum Manhattan distance in points
	// between clicks of one sequence.
	MultiClickDistance float64
}

// DefaultConfig returns sensible defaults for pointer gesture handling.
func DefaultConfig() Config {
	return Config{
		MultiClickTime:     400 * time.Millisecond,
		MultiClickDistance: 4,
	}
}

// Coordinator translates pointer gestures into selection operations. It is
// a state machine: idle until a pointer-down lands on the text surface,
// dragging until the matching pointer-up or pointer-leave. Move events
// while dragging are coalesced to at most one selection update per call to
// Frame; pointer-up applies one final immediate update so the committed
// selection matches the exact release position.
type Coordinator struct {
	config     Config
	model      *textmodel.Model
	selections *selection.Manager
	logger     *slog.Logger

	coalescer      *Coalescer
	writeClipboard func(string) error

	dragging     bool
	anchor       model.Point
	anchorOffset int

	lastClickPos  model.Point
	lastClickTime time.Time
	clickCount    int
}

// NewCoordinator creates a coordinator with default configuration. A nil
// logger uses slog.Default().
func NewCoordinator(m *textmodel.Model, selections *selection.Manager, logger *slog.Logger) *Coordinator {
	return NewCoordinatorWithConfig(m, selections, logger, DefaultConfig())
}

// NewCoordinatorWithConfig creates a coordinator with custom configuration.
func NewCoordinatorWithConfig(m *textmodel.Model, selections *selection.Manager, logger *slog.Logger, config Config) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		config:         config,
		model:          m,
		selections:     selections,
		logger:         logger,
		writeClipboard: clipboard.WriteAll,
	}
	c.coalescer = NewCoalescer(c.applyDrag)
	return c
}

// PointerDown handles a press on the text surface. A single click clears
// the transient selection and arms a drag at the pressed coordinate. The
// second, third, and fourth click of one sequence select the word,
// sentence, and line at the clicked offset instead of arming a drag.
// Presses that resolve to no offset (empty document) leave the coordinator
// idle.
func (c *Coordinator) PointerDown(x, y float64, at time.Time) {
	count := c.recordClick(x, y, at)

	c.selections.Clear(selection.TypeUser, selection.TypeSmart)
	c.dragging = false

	offset, ok := c.model.CoordinatesToOffset(x, y)
	if !ok {
		return
	}

	switch count {
	case 2:
		c.selections.SelectWordAt(offset)
		return
	case 3:
		c.selections.SelectSentenceAt(offset)
		return
	case 4:
		c.selections.SelectLineAt(offset)
		return
	}

	c.dragging = true
	c.anchor = model.Point{X: x, Y: y}
	c.anchorOffset = offset
}

// PointerMove handles movement while a button is held. Positions are
// coalesced; nothing is applied until the next Frame or the release.
func (c *Coordinator) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	c.coalescer.Request(x, y)
}

// Frame applies the latest coalesced pointer position, if any. The host
// calls this once per rendering frame while a drag may be in progress.
func (c *Coordinator) Frame() bool {
	return c.coalescer.Tick()
}

// PointerUp ends the drag, applying one final update at the exact release
// position regardless of frame timing.
func (c *Coordinator) PointerUp(x, y float64) {
	if !c.dragging {
		return
	}
	c.coalescer.FlushNow(x, y)
	c.dragging = false
}

// PointerLeave ends the drag when the pointer exits the text surface. Any
// coalesced position is applied first so the selection does not snap back.
func (c *Coordinator) PointerLeave() {
	if !c.dragging {
		return
	}
	c.coalescer.Tick()
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *Coordinator) Dragging() bool {
	return c.dragging
}

// Copy writes the current selection's text to the system clipboard. The
// current selection is the primary user selection, or the latest smart
// selection when no drag selection exists, so word/sentence/line gestures
// are copyable too. An empty or absent selection is a no-op.
func (c *Coordinator) Copy() error {
	sel := c.current()
	if sel == nil {
		return nil
	}
	text := c.selections.Text(sel)
	if text == "" {
		return nil
	}
	if err := c.writeClipboard(text); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
		return err
	}
	return nil
}

// current returns the selection a copy gesture acts on: the primary user
// selection, falling back to the most recent smart selection.
func (c *Coordinator) current() *selection.Selection {
	if sel := c.selections.Primary(); sel != nil {
		return sel
	}
	all := c.selections.All()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Type == selection.TypeSmart {
			return all[i]
		}
	}
	return nil
}

// SelectAll selects the whole document, the keyboard shortcut counterpart
// of a drag over everything.
func (c *Coordinator) SelectAll() *selection.Selection {
	return c.selections.SelectAll()
}

// Reset clears all gesture state without touching selections.
func (c *Coordinator) Reset() {
	c.dragging = false
	c.coalescer.Cancel()
	c.clickCount = 0
	c.lastClickTime = time.Time{}
}

// applyDrag resolves the current pointer position against the drag anchor
// and replaces the transient selection.
func (c *Coordinator) applyDrag(x, y float64) {
	cur, ok := c.model.CoordinatesToOffsetAnchored(x, y, c.anchor)
	if !ok {
		return
	}
	start, end := c.anchorOffset, cur
	if start > end {
		start, end = end, start
	}
	c.selections.SetSelection(start, end)
}

// recordClick returns this click's position in its sequence (1 to 4,
// wrapping back to 1). A zero timestamp falls back to time.Now().
func (c *Coordinator) recordClick(x, y float64, at time.Time) int {
	if at.IsZero() {
		at = time.Now()
	}
	pos := model.Point{X: x, Y: y}

	if c.inSequence(pos, at) {
		c.clickCount++
		if c.clickCount > 4 {
			c.clickCount = 1
		}
	} else {
		c.clickCount = 1
	}

	c.lastClickPos = pos
	c.lastClickTime = at
	return c.clickCount
}

func (c *Coordinator) inSequence(pos model.Point, at time.Time) bool {
	if c.clickCount == 0 || c.lastClickTime.IsZero() {
		return false
	}
	elapsed := at.Sub(c.lastClickTime)
	if elapsed < 0 || elapsed > c.config.MultiClickTime {
		return false
	}
	return pos.WeightedManhattan(c.lastClickPos, 1) <= c.config.MultiClickDistance
}
