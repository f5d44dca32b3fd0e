package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/laast/domain"
)

// ProgressManagerImpl counts settled corpus entries and, on a terminal,
// draws a bar naming the last settled entry and the number dropped so far.
// Counts are kept whether or not anything is drawn.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool

	entries int
	settled int
	dropped int
}

// NewProgressManager creates a manager drawing to stderr when it is a terminal
func NewProgressManager() domain.ProgressManager {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
	}
}

// NewNoopProgressManager returns a manager that never draws anything
func NewNoopProgressManager() domain.ProgressManager {
	return &ProgressManagerImpl{writer: io.Discard}
}

// IsInteractiveEnvironment reports whether stderr is a terminal
func IsInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Initialize resets the counters for a batch of entries
func (pm *ProgressManagerImpl) Initialize(entries int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.entries = entries
	pm.settled = 0
	pm.dropped = 0
}

// Start draws the empty bar
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.ensureBar()
}

// EntryDone records one settled entry
func (pm *ProgressManagerImpl) EntryDone(entry string, dropped bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.settled++
	if dropped {
		pm.dropped++
	}

	if bar := pm.ensureBar(); bar != nil {
		bar.Describe(pm.describe(entry))
		_ = bar.Set(pm.settled)
	}
}

// Complete finishes the bar and prints a one-line tally
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar == nil {
		return
	}
	if success {
		_ = pm.bar.Finish()
		fmt.Fprintf(pm.writer, "Parsed %d of %d entries (%d dropped)\n",
			pm.settled-pm.dropped, pm.entries, pm.dropped)
	} else {
		_ = pm.bar.Exit()
		fmt.Fprintf(pm.writer, "\nIngestion cancelled after %d of %d entries\n", pm.settled, pm.entries)
	}
	pm.bar = nil
}

// Counts returns the number of settled and dropped entries
func (pm *ProgressManagerImpl) Counts() (settled, dropped int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.settled, pm.dropped
}

// SetWriter redirects the bar; only *os.File terminals are drawn on
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	file, ok := writer.(*os.File)
	pm.interactive = ok && term.IsTerminal(int(file.Fd()))
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// Close abandons a bar left open by an early return
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar != nil {
		_ = pm.bar.Exit()
		pm.bar = nil
	}
}

func (pm *ProgressManagerImpl) describe(entry string) string {
	if pm.dropped == 0 {
		return fmt.Sprintf("Parsing %-24s", entry)
	}
	return fmt.Sprintf("Parsing %-24s %d dropped", entry, pm.dropped)
}

// ensureBar must be called with mu held
func (pm *ProgressManagerImpl) ensureBar() *progressbar.ProgressBar {
	if !pm.interactive {
		return nil
	}
	if pm.bar == nil {
		writer := pm.writer
		if writer == nil {
			writer = io.Discard
		}
		pm.bar = progressbar.NewOptions(pm.entries,
			progressbar.OptionSetDescription("Parsing"),
			progressbar.OptionSetWriter(writer),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(writer)
			}),
		)
	}
	return pm.bar
}
