package game

import (
	"errors"
	"testing"
)

func TestCancel(t *testing.T) {
	g := newGame(t, "boat", 5)
	if err := g.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if g.Status() != StatusCancelled {
		t.Fatalf("status = %q, want cancelled", g.Status())
	}
	if err := g.Cancel(); !errors.Is(err, ErrGameOver) {
		t.Errorf("second Cancel: err = %v, want ErrGameOver", err)
	}
	if _, err := g.Guess("b"); !errors.Is(err, ErrGameOver) {
		t.Errorf("Guess after cancel: err = %v, want ErrGameOver", err)
	}
	if g.Status() != StatusCancelled || len(g.Guesses()) != 0 {
		t.Error("cancelled game changed")
	}
}

func TestCancelWonGame(t *testing.T) {
	g := newGame(t, "boat", 5)
	if _, err := g.Guess("boat"); err != nil {
		t.Fatal(err)
	}
	if err := g.Cancel(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("err = %v, want ErrGameOver", err)
	}
	if g.Status() != StatusWon {
		t.Errorf("status = %q, want won", g.Status())
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := newGame(t, "boat", 5)
	for _, s := range []string{"o", "x", "o"} {
		if _, err := g.Guess(s); err != nil {
			t.Fatal(err)
		}
	}
	r, err := Restore(g.Snapshot())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if r.PublicWord() != "_o__" || r.AttemptsRemaining() != 3 || r.GuessedCount() != 2 {
		t.Errorf("restored public=%q remaining=%d set=%d", r.PublicWord(), r.AttemptsRemaining(), r.GuessedCount())
	}
	checkInvariants(t, r)

	// the restored game keeps duplicate detection
	out, err := r.Guess("x")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Miss || out.AttemptsRemaining != 2 {
		t.Errorf("miss=%v remaining=%d, want true/2", out.Miss, out.AttemptsRemaining)
	}
}

func TestRestoreRejectsInconsistentSnapshot(t *testing.T) {
	g := newGame(t, "boat", 5)
	if _, err := g.Guess("x"); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	snap.AttemptsRemaining = 5
	if _, err := Restore(snap); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("attempt mismatch: err = %v, want ErrInvalidSnapshot", err)
	}

	snap = g.Snapshot()
	snap.Status = "paused"
	if _, err := Restore(snap); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("unknown status: err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newGame(t, "boat", 5)
	if _, err := g.Guess("b"); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	snap.Guesses[0].Value = "z"
	if g.Guesses()[0].Value != "b" {
		t.Error("mutating a snapshot changed the game")
	}
}
