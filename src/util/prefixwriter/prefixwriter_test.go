package prefixwriter_test

import (
	"bytes"
	"io"
	"testing"

	"camfleet/src/util/prefixwriter"
)

func TestWriter_PrefixesLines(t *testing.T) {
	var out bytes.Buffer
	w := prefixwriter.New(&out, "  | ")
	io.WriteString(w, "one\ntwo\n")
	if got, want := out.String(), "  | one\n  | two\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriter_BuffersPartialLines(t *testing.T) {
	var out bytes.Buffer
	w := prefixwriter.New(&out, "> ")
	io.WriteString(w, "par")
	if out.Len() != 0 {
		t.Fatalf("partial line must stay buffered: %q", out.String())
	}
	io.WriteString(w, "tial\nrest")
	if got, want := out.String(), "> partial\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "> partial\n> rest\n"; got != want {
		t.Fatalf("after flush got %q, want %q", got, want)
	}
}

func TestWriter_FlushEmptyIsNoop(t *testing.T) {
	var out bytes.Buffer
	w := prefixwriter.New(&out, "> ")
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
