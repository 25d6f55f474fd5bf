package ptr

import "testing"

func TestTo(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		s := "test"
		p := To(s)
		if p == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if *p != s {
			t.Errorf("Expected %q, got %q", s, *p)
		}
		// Verify it's a different address
		if p == &s {
			t.Error("Expected different address")
		}
	})

	t.Run("custom type", func(t *testing.T) {
		type MutationName string
		name := MutationName("created")
		p := To(name)
		if p == nil {
			t.Fatal("Expected non-nil pointer")
		}
		if *p != name {
			t.Errorf("Expected %q, got %q", name, *p)
		}
	})
}

func TestString(t *testing.T) {
	p := String("short and strong")
	if p == nil || *p != "short and strong" {
		t.Errorf("unexpected pointer value: %v", p)
	}
}

func TestFloat64(t *testing.T) {
	p := Float64(2.5)
	if p == nil || *p != 2.5 {
		t.Errorf("unexpected pointer value: %v", p)
	}
}
