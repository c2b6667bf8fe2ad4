package questions

import (
	"strings"
	"testing"
)

func TestLoadBuiltinAll(t *testing.T) {
	for _, name := range []string{Console, Web} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", name, err)
			}
			if s.Name != name {
				t.Errorf("name = %q, want %q", s.Name, name)
			}
			if s.Len() != 5 {
				t.Errorf("expected 5 questions, got %d", s.Len())
			}
			for i, q := range s.Questions {
				if q == "" {
					t.Errorf("question %d is empty", i)
				}
				if !strings.HasSuffix(q, "?") {
					t.Errorf("question %d should end with '?': %q", i, q)
				}
			}
		})
	}
}

func TestConsoleSetOrder(t *testing.T) {
	s := MustLoadBuiltin(Console)
	if s.At(0) != "Is the issue affecting multiple tenants or units simultaneously?" {
		t.Errorf("unexpected first question: %q", s.At(0))
	}
	if s.At(4) != "Have previous attempts to resolve the issue failed?" {
		t.Errorf("unexpected last question: %q", s.At(4))
	}
}

func TestSetsDiffer(t *testing.T) {
	c := MustLoadBuiltin(Console)
	w := MustLoadBuiltin(Web)
	if c.Len() != w.Len() {
		t.Fatal("variants must share structure")
	}
	for i := range c.Questions {
		if c.At(i) == w.At(i) {
			t.Errorf("question %d is identical across sets", i)
		}
	}
}

func TestTextsIsCopy(t *testing.T) {
	s := MustLoadBuiltin(Console)
	texts := s.Texts()
	texts[0] = "changed"
	if s.At(0) == "changed" {
		t.Error("Texts must return a copy")
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	if _, err := LoadBuiltin("nonexistent"); err == nil {
		t.Error("expected error for unknown set")
	}
}

func TestList(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != Console || names[1] != Web {
		t.Errorf("List() = %v", names)
	}
}
