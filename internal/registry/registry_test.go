package registry

import (
	"errors"
	"strings"
	"testing"
)

func TestRegisterListCreate(t *testing.T) {
	Register("zz_failing", "Failing", func(Options) (Game, error) {
		return nil, errors.New("boom")
	})

	if !Exists("zz_failing") {
		t.Fatal("expected zz_failing to be registered")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_failing" {
			found = true
			if info.Title != "Failing" {
				t.Errorf("title = %q, want %q", info.Title, "Failing")
			}
		}
	}
	if !found {
		t.Error("List() is missing zz_failing")
	}

	_, err := Create("zz_failing", Options{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Create() error = %v, want wrapped factory error", err)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game", Options{}); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no_such_game") {
		t.Error("Exists() = true for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", "Dup", func(Options) (Game, error) { return nil, nil })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_dup", "Dup", func(Options) (Game, error) { return nil, nil })
}

func TestListSorted(t *testing.T) {
	Register("zz_b", "B", func(Options) (Game, error) { return nil, nil })
	Register("zz_a", "A", func(Options) (Game, error) { return nil, nil })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
