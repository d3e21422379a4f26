package game

import (
	"errors"
	"testing"

	"office3d/internal/world"
)

func TestLoadHandleCompletesOnce(t *testing.T) {
	h := NewLoadHandle()
	calls := 0
	h.OnComplete(func(env *world.Environment, err error) {
		calls++
	})

	h.Complete(&world.Environment{ID: "a"}, nil)
	h.Complete(&world.Environment{ID: "b"}, nil)

	if calls != 1 {
		t.Errorf("Expected callback fired exactly once, got %d", calls)
	}
}

func TestLoadHandleLateAttachment(t *testing.T) {
	h := NewLoadHandle()
	h.Complete(nil, errors.New("boom"))

	var got error
	h.OnComplete(func(env *world.Environment, err error) {
		got = err
	})
	if got == nil {
		t.Error("Expected immediate callback with the stored error")
	}
}

func TestLoadHandleSecondAttachmentDropped(t *testing.T) {
	h := NewLoadHandle()
	first, second := 0, 0
	h.OnComplete(func(*world.Environment, error) { first++ })
	h.OnComplete(func(*world.Environment, error) { second++ })

	h.Complete(&world.Environment{ID: "a"}, nil)

	if first != 1 {
		t.Errorf("Expected first callback fired, got %d", first)
	}
	if second != 0 {
		t.Errorf("Expected second attachment dropped, got %d calls", second)
	}
}
