package tui

import (
	"errors"
	"strings"
	"testing"

	"stylemig/internal/batch"
	"stylemig/internal/convert"
	ttesting "stylemig/internal/tui/testing"
)

func TestModel_TracksEvents(t *testing.T) {
	m := NewModel("Converting 2 styles", 2, nil)
	h := ttesting.NewTestHarness(m)

	h.SendMsg(EventMsg(batch.Event{Kind: batch.Started, Input: "styles/ocean", Total: 2}))
	if view := h.View(); !strings.Contains(view, "ocean") {
		t.Errorf("active style not shown:\n%s", view)
	}

	h.SendMsgs(
		EventMsg(batch.Event{
			Kind:   batch.Finished,
			Input:  "styles/ocean",
			Done:   1,
			Total:  2,
			Result: &batch.Result{Input: "styles/ocean", Report: &convert.Report{Name: "ocean", Tier: "complex", Spliced: []string{"a", "b"}}},
		}),
		EventMsg(batch.Event{
			Kind:   batch.Finished,
			Input:  "styles/broken.zip",
			Done:   2,
			Total:  2,
			Result: &batch.Result{Input: "styles/broken.zip", Err: errors.New("style package is empty")},
		}),
	)

	view := h.View()
	for _, want := range []string{"ocean", "complex", "2 sections", "broken.zip", "style package is empty", "2/2", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	cmd := h.SendMsg(DoneMsg{})
	if !ttesting.IsQuit(cmd) {
		t.Error("DoneMsg should quit")
	}
	if !m.Done() || m.Canceled() {
		t.Errorf("Done=%v Canceled=%v", m.Done(), m.Canceled())
	}
}

func TestModel_QuitCancels(t *testing.T) {
	canceled := false
	m := NewModel("Converting", 3, func() { canceled = true })
	h := ttesting.NewTestHarness(m)

	cmd := h.SendKey("q")
	if !ttesting.IsQuit(cmd) {
		t.Error("q should quit")
	}
	if !canceled || !m.Canceled() {
		t.Error("quitting early should cancel the batch")
	}
	if !strings.Contains(h.View(), "Canceling") {
		t.Errorf("view should show cancellation:\n%s", h.View())
	}
}

func TestModel_QuitAfterDoneDoesNotCancel(t *testing.T) {
	canceled := false
	m := NewModel("Converting", 1, func() { canceled = true })
	h := ttesting.NewTestHarness(m)

	h.SendMsg(DoneMsg{})
	h.SendKey("ctrl+c")
	if canceled {
		t.Error("cancel called after completion")
	}
}

func TestModel_RecentIsBounded(t *testing.T) {
	m := NewModel("Converting", 20, nil)
	for i := 0; i < 20; i++ {
		m.Update(EventMsg(batch.Event{
			Kind:   batch.Finished,
			Done:   i + 1,
			Total:  20,
			Result: &batch.Result{Err: errors.New("x")},
		}))
	}
	if len(m.recent) != maxRecent {
		t.Errorf("recent = %d, want %d", len(m.recent), maxRecent)
	}
	if m.failed != 20 {
		t.Errorf("failed = %d, want 20", m.failed)
	}
}

func TestDisplayName(t *testing.T) {
	for in, want := range map[string]string{
		"styles/ocean/": "ocean",
		`C:\styles\x`:   "x",
		"plain":         "plain",
	} {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}
