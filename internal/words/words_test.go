package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbedded(t *testing.T) {
	list, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("embedded list is empty")
	}
	for _, w := range list {
		if !isWord(w) {
			t.Errorf("embedded word %q is not a word", w)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# comment\nBoat\n\nnot a word\ncat\nx_y\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 2 || list[0] != "boat" || list[1] != "cat" {
		t.Errorf("list = %v, want [boat cat]", list)
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyList) {
		t.Errorf("err = %v, want ErrEmptyList", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRandom(t *testing.T) {
	if _, err := NewRandom(nil); !errors.Is(err, ErrEmptyList) {
		t.Errorf("err = %v, want ErrEmptyList", err)
	}
	list := []string{"boat", "cat", "trouble"}
	src, err := NewRandom(list)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		w, err := src.Next()
		if err != nil {
			t.Fatal(err)
		}
		if w != "boat" && w != "cat" && w != "trouble" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestDaily(t *testing.T) {
	list := []string{"boat", "cat", "trouble", "udacity", "university"}
	src, err := NewDaily(list, "salt")
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return day }
	first, _ := src.Next()

	src.now = func() time.Time { return day.Add(10 * time.Hour) }
	second, _ := src.Next()
	if first != second {
		t.Errorf("same day gave %q and %q", first, second)
	}
	if want := list[WordIndex(day, "salt", len(list))]; first != want {
		t.Errorf("word = %q, want %q", first, want)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Error("WordIndex with empty list must be 0")
	}
}

func TestFixed(t *testing.T) {
	w, err := Fixed("boat").Next()
	if err != nil || w != "boat" {
		t.Errorf("Fixed = %q, %v", w, err)
	}
}
