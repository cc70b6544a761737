// Package term implements the variant editing dialog on a terminal
// using tcell. It renders the candidate rows, lets the user type into
// them, reorder them, and pick the active candidate, and streams each
// interaction back to the coordinator as dialog updates.
//
// Key bindings:
//
//	Up/Down         move focus between rows
//	Alt+Up/Down     move the focused row
//	Ctrl+A          make the focused row the active candidate
//	Ctrl+D          delete the focused row
//	Enter           commit to the active candidate
//	Esc             close without committing
package term

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/textvar/internal/codec"
	"github.com/dshills/textvar/internal/dialog"
	"github.com/dshills/textvar/internal/variantset"
)

// Dialog is a tcell-backed dialog.Surface.
type Dialog struct {
	screen tcell.Screen

	// RejectDelimiters refuses keystrokes that would insert reserved
	// delimiter characters into a candidate.
	RejectDelimiters bool

	// TrailingRow keeps a spare blank row after the last candidate to
	// type a new variant into.
	TrailingRow bool

	set      *variantset.Set
	focusRow int
	title    string
	notice   string

	updates chan dialog.Update
}

// New creates a terminal dialog on a fresh tcell screen.
func New() (*Dialog, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Dialog{screen: screen, RejectDelimiters: true, TrailingRow: true}, nil
}

// NewWithScreen creates a dialog on an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewWithScreen(screen tcell.Screen) *Dialog {
	return &Dialog{screen: screen, RejectDelimiters: true, TrailingRow: true}
}

// Open initializes the screen and starts the input loop. The returned
// channel closes when the user commits or cancels.
func (d *Dialog) Open(seed dialog.Seed) (<-chan dialog.Update, error) {
	if err := d.screen.Init(); err != nil {
		return nil, err
	}

	d.set = variantset.New()
	d.set.Replace(seed.Entries, seed.ActiveIndex)
	if d.TrailingRow {
		d.set.EnsureTrailingEmptyRow()
	}
	d.focusRow = seed.ActiveIndex
	d.title = seed.Title
	d.updates = make(chan dialog.Update, 16)

	d.render()
	go d.inputLoop()
	return d.updates, nil
}

// inputLoop consumes tcell events until the dialog closes.
func (d *Dialog) inputLoop() {
	defer func() {
		d.screen.Fini()
		close(d.updates)
	}()

	for {
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
			d.render()

		case *tcell.EventKey:
			if done := d.handleKey(ev); done {
				return
			}
			d.render()
		}
	}
}

// handleKey applies one keystroke. It returns true when the dialog is
// finished.
func (d *Dialog) handleKey(ev *tcell.EventKey) bool {
	d.notice = ""

	switch ev.Key() {
	case tcell.KeyEscape:
		d.updates <- dialog.Update{Abandon: true}
		return true

	case tcell.KeyEnter:
		d.updates <- dialog.Update{Commit: true}
		return true

	case tcell.KeyUp:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			d.moveRow(-1)
		} else if d.focusRow > 0 {
			d.focusRow--
		}
		return false

	case tcell.KeyDown:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			d.moveRow(1)
		} else if d.focusRow < d.set.Len()-1 {
			d.focusRow++
		}
		return false

	case tcell.KeyCtrlA:
		d.set.SetActive(d.focusRow)
		d.emitStructural()
		return false

	case tcell.KeyCtrlD:
		if d.focusRow == 0 {
			d.notice = "the original cannot be deleted"
			return false
		}
		d.set.RemoveAt(d.focusRow)
		if d.focusRow >= d.set.Len() {
			d.focusRow = d.set.Len() - 1
		}
		d.emitStructural()
		return false

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		text := d.set.Entry(d.focusRow)
		if len(text) > 0 {
			_, size := utf8.DecodeLastRuneInString(text)
			d.setFocusedText(text[:len(text)-size])
		}
		return false

	case tcell.KeyRune:
		d.typeRune(ev.Rune())
		return false

	default:
		return false
	}
}

// typeRune appends a typed character to the focused row.
func (d *Dialog) typeRune(r rune) {
	next := d.set.Entry(d.focusRow) + string(r)
	if d.RejectDelimiters && codec.ContainsDelimiter(next) {
		d.notice = "candidates cannot contain {{, }} or |"
		return
	}
	d.setFocusedText(next)
}

// setFocusedText updates the focused row and emits the new state.
func (d *Dialog) setFocusedText(text string) {
	d.set.SetEntryText(d.focusRow, text)
	if d.TrailingRow {
		d.set.EnsureTrailingEmptyRow()
	}
	d.emit()
}

// moveRow shifts the focused row by delta, keeping focus on it.
func (d *Dialog) moveRow(delta int) {
	to := d.focusRow + delta
	if to < 0 || to >= d.set.Len() {
		return
	}
	d.set.MoveEntry(d.focusRow, to)
	d.focusRow = to
	d.emitStructural()
}

// emit sends the full current state to the coordinator as a typing
// update, which the session may debounce.
func (d *Dialog) emit() {
	d.send(false)
}

// emitStructural sends the full current state flagged as a discrete
// structural change, which the session writes through immediately.
func (d *Dialog) emitStructural() {
	d.send(true)
}

func (d *Dialog) send(structural bool) {
	d.updates <- dialog.Update{
		Entries:     d.set.Entries(),
		ActiveIndex: d.set.Active(),
		FocusRow:    d.focusRow,
		Structural:  structural,
	}
}

// render draws the dialog.
func (d *Dialog) render() {
	d.screen.Clear()

	titleStyle := tcell.StyleDefault.Bold(true)
	drawText(d.screen, 0, 0, titleStyle, d.title)

	for i, entry := range d.set.Entries() {
		style := tcell.StyleDefault
		marker := "  "
		if i == d.set.Active() {
			marker = "* "
			style = style.Foreground(tcell.ColorGreen)
		}
		if i == d.focusRow {
			style = style.Reverse(true)
		}
		drawText(d.screen, 0, i+2, style, fmt.Sprintf("%s%s", marker, entry))
	}

	helpStyle := tcell.StyleDefault.Dim(true)
	help := "enter commit  esc cancel  ^A activate  ^D delete  alt+arrows reorder"
	if d.notice != "" {
		help = d.notice
	}
	drawText(d.screen, 0, d.set.Len()+3, helpStyle, help)

	d.screen.ShowCursor(2+uniseg.StringWidth(d.set.Entry(d.focusRow)), d.focusRow+2)
	d.screen.Show()
}

// drawText writes a string at the given position, advancing one screen
// cell per column of display width.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += uniseg.StringWidth(string(r))
	}
}

// Ensure Dialog implements dialog.Surface.
var _ dialog.Surface = (*Dialog)(nil)
