package notify

import (
	"bytes"
	"testing"
)

func TestWriterSend(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{Out: &buf}

	w.Send("Promotion: Recruit", "Tier 2 reached at 150 points.")
	w.Send("All clear", "")

	got := buf.String()
	want := "Promotion: Recruit: Tier 2 reached at 150 points.\nAll clear\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterNilOut(t *testing.T) {
	Writer{}.Send("ignored", "no destination")
}
