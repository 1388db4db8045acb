package cdma

import (
	"testing"

	"golang.org/x/xerrors"
)

func run(t *testing.T, e *Engine) []DecodedWord {
	t.Helper()

	if err := e.GenerateWalshCodes(); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if err := e.TransmitData(); err != nil {
		t.Fatalf("%+v\n", err)
	}

	words, err := e.DecodedWords()
	if err != nil {
		t.Fatalf("%+v\n", err)
	}
	return words
}

func TestSingleStation(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("alpha", "A"); err != nil {
		t.Fatalf("%+v\n", err)
	}

	words := run(t, e)
	if len(words) != 1 {
		t.Fatalf("expected 1 decoded word, got %d\n", len(words))
	}
	if words[0].Name != "alpha" || words[0].Text != "A" {
		t.Fatalf("expected alpha says: A, got %s\n", words[0])
	}
	if e.CodeLength() != 1 {
		t.Fatalf("expected code length 1, got %d\n", e.CodeLength())
	}
}

func TestTwoStations(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("alpha", "A"); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if err := e.AddStation("bravo", "B"); err != nil {
		t.Fatalf("%+v\n", err)
	}

	words := run(t, e)
	expected := map[string]string{"alpha": "A", "bravo": "B"}
	for _, w := range words {
		if w.Text != expected[w.Name] {
			t.Fatalf("station %s: expected %q, got %q\n", w.Name, expected[w.Name], w.Text)
		}
	}
}

// Five co-transmitting stations force an order-3 matrix with three unused
// rows; every word must still come back intact.
func TestManyStations(t *testing.T) {
	e := NewEngine()

	expected := map[string]string{
		"A": "GOD",
		"B": "CAT",
		"C": "HAM",
		"D": "SUN",
		"E": "FOX",
	}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		if err := e.AddStation(name, expected[name]); err != nil {
			t.Fatalf("%+v\n", err)
		}
	}

	words := run(t, e)
	if e.CodeLength() != 8 {
		t.Fatalf("expected code length 8, got %d\n", e.CodeLength())
	}
	for _, w := range words {
		if w.Text != expected[w.Name] {
			t.Fatalf("station %s: expected %q, got %q\n", w.Name, expected[w.Name], w.Text)
		}
	}
}

// A station shorter than the longest word goes silent for the trailing
// slots; its decoded text must still be exactly its own word.
func TestUnequalLengths(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("long", "HELLO"); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if err := e.AddStation("short", "HI"); err != nil {
		t.Fatalf("%+v\n", err)
	}

	words := run(t, e)
	if e.Slots() != 40 {
		t.Fatalf("expected 40 slots, got %d\n", e.Slots())
	}

	expected := map[string]string{"long": "HELLO", "short": "HI"}
	for _, w := range words {
		if w.Text != expected[w.Name] {
			t.Fatalf("station %s: expected %q, got %q\n", w.Name, expected[w.Name], w.Text)
		}
	}
}

func TestOverwrite(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("A", "X"); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if err := e.AddStation("A", "Y"); err != nil {
		t.Fatalf("%+v\n", err)
	}

	if e.StationCount() != 1 {
		t.Fatalf("expected 1 station, got %d\n", e.StationCount())
	}

	words := run(t, e)
	if len(words) != 1 || words[0].Text != "Y" {
		t.Fatalf("expected recovered word Y, got %+v\n", words)
	}
}

func TestZeroStations(t *testing.T) {
	e := NewEngine()
	if err := e.GenerateWalshCodes(); !xerrors.Is(err, ErrNoStations) {
		t.Fatalf("expected ErrNoStations, got: %+v\n", err)
	}

	// The failed call must not have advanced the phase.
	if err := e.AddStation("alpha", "A"); err != nil {
		t.Fatalf("%+v\n", err)
	}
	words := run(t, e)
	if words[0].Text != "A" {
		t.Fatalf("expected A, got %q\n", words[0].Text)
	}
}

func TestOutOfSequence(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("alpha", "A"); err != nil {
		t.Fatalf("%+v\n", err)
	}

	if err := e.TransmitData(); !xerrors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got: %+v\n", err)
	}
	if _, err := e.DecodedWords(); !xerrors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got: %+v\n", err)
	}

	if err := e.GenerateWalshCodes(); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if err := e.GenerateWalshCodes(); !xerrors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got: %+v\n", err)
	}
	if err := e.AddStation("bravo", "B"); !xerrors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got: %+v\n", err)
	}
	if _, err := e.DecodedWords(); !xerrors.Is(err, ErrOutOfSequence) {
		t.Fatalf("expected ErrOutOfSequence, got: %+v\n", err)
	}
}

func TestCodecErrorPropagates(t *testing.T) {
	e := NewEngine()
	if err := e.AddStation("alpha", "λ"); err == nil {
		t.Fatal("expected error for word outside single-byte range")
	}
	if e.StationCount() != 0 {
		t.Fatalf("expected no stations after failed registration, got %d\n", e.StationCount())
	}
}
