// Package dialog defines the transient input surface the coordinator
// collects variant edits through.
//
// A Surface shows the candidate list to the user and streams Update
// events back as they type, reorder, select, commit, or cancel. The
// channel closes when the surface does, which is the final close
// notification. The coordinator never touches rendering; any modal,
// terminal, or test double satisfying Surface will do.
package dialog

// Seed is the initial state a surface opens with.
type Seed struct {
	// Entries is the candidate list, in row order.
	Entries []string

	// ActiveIndex is the currently active row.
	ActiveIndex int

	// Title is the user-facing label ("New variants" vs "Edit
	// variants"); purely cosmetic.
	Title string
}

// Update is one user interaction delivered back to the coordinator.
// Entries and ActiveIndex carry the surface's full current state.
type Update struct {
	// Entries is the candidate list after the interaction.
	Entries []string

	// ActiveIndex is the active row after the interaction.
	ActiveIndex int

	// FocusRow is the row that should hold focus after re-render.
	FocusRow int

	// Structural marks a discrete change (reorder, delete, active
	// selection) rather than in-progress typing. Structural updates
	// write through to the document immediately instead of being
	// debounced.
	Structural bool

	// Commit is set on an explicit commit action. The surface closes
	// after sending it.
	Commit bool

	// Abandon is set on cancel/close without commit. The surface
	// closes after sending it.
	Abandon bool
}

// Surface is a transient input surface for one editing session.
type Surface interface {
	// Open shows the surface and returns the update stream. The
	// channel is closed when the surface closes.
	Open(seed Seed) (<-chan Update, error)
}
