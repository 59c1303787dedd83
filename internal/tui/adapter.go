package tui

import (
	"fmt"

	"autosig/internal/batch"
)

// UI bridges the synchronous batch loop to the bubbletea model. Each call
// becomes an event; PromptConflict blocks until the model relays an answer.
type UI struct {
	events chan<- Event
}

func NewUI(events chan<- Event) *UI {
	return &UI{events: events}
}

func (u *UI) ReportProgress(done, total int) {
	u.events <- Event{Progress: &Progress{Done: done, Total: total}}
}

func (u *UI) Note(path, msg string) {
	u.events <- Event{Line: noteStyle.Render(fmt.Sprintf("%s: %s", path, msg))}
}

func (u *UI) Warn(path, msg string) {
	u.events <- Event{Line: warnStyle.Render(fmt.Sprintf("%s: %s", path, msg))}
}

func (u *UI) PromptConflict(path string) byte {
	reply := make(chan byte, 1)
	u.events <- Event{Prompt: &PromptRequest{Path: path, Reply: reply}}
	return <-reply
}

func (u *UI) ReportCancellation(processed, remaining int, skipped []batch.SkipEntry) {
	u.events <- Event{Line: warnStyle.Render(
		fmt.Sprintf("cancelled: %d processed, %d not attempted", processed, remaining))}
}
