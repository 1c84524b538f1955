package session

import (
	"errors"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen("web", "code", "chat")

	tag, err := s.FocusedTag()
	if err != nil {
		t.Fatal(err)
	}
	if tag.ID != 1 || tag.Name != "web" {
		t.Errorf("FocusedTag() = %+v", tag)
	}
	if got := len(s.Tags()); got != 3 {
		t.Errorf("len(Tags()) = %d", got)
	}
}

func TestNewScreenEmpty(t *testing.T) {
	s := NewScreen()
	if _, err := s.FocusedTag(); !errors.Is(err, ErrNoFocusedTag) {
		t.Errorf("err = %v, want ErrNoFocusedTag", err)
	}
}

func TestFocusTag(t *testing.T) {
	s := NewScreen("1", "2")

	if err := s.FocusTag(2); err != nil {
		t.Fatal(err)
	}
	tag, _ := s.FocusedTag()
	if tag.ID != 2 {
		t.Errorf("focused = %d, want 2", tag.ID)
	}

	if err := s.FocusTag(9); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("err = %v, want ErrTagNotFound", err)
	}
	tag, _ = s.FocusedTag()
	if tag.ID != 2 {
		t.Errorf("failed focus changed tag to %d", tag.ID)
	}
}

func TestTagByName(t *testing.T) {
	s := NewScreen("a", "b")
	tag, err := s.TagByName("b")
	if err != nil {
		t.Fatal(err)
	}
	if tag.ID != 2 {
		t.Errorf("ID = %d", tag.ID)
	}
	if _, err := s.TagByName("c"); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("err = %v", err)
	}
}
