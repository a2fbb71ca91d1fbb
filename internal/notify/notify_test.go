package notify

import (
	"bytes"
	"testing"
)

func TestBellWritesAlert(t *testing.T) {
	var buf bytes.Buffer
	b := &Bell{W: &buf}
	b.Notify("Break time over!", "Ready for another study session?")

	want := "\aBreak time over!\nReady for another study session?\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestBellRing(t *testing.T) {
	var buf bytes.Buffer
	(&Bell{W: &buf}).Ring()
	if buf.String() != "\a" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Notify("Settings Applied", "Study: 50min, Break: 10min")
	got := rec.Messages()
	if len(got) != 1 || got[0].Title != "Settings Applied" {
		t.Fatalf("unexpected messages: %+v", got)
	}
}
