package session

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoFocusedTag = errors.New("no focused tag")
	ErrTagNotFound  = errors.New("tag not found")
)

type TagID uint32

type Tag struct {
	ID   TagID
	Name string
}

// Screen is the window manager session shared between event dispatches.
// It is not safe for concurrent use; share it through lock.Mutex.
type Screen struct {
	tags    []Tag
	focused TagID
}

// NewScreen creates a tag for each name with ids starting at 1 and focuses
// the first one.
func NewScreen(names ...string) Screen {
	tags := make([]Tag, 0, len(names))
	for i, name := range names {
		tags = append(tags, Tag{ID: TagID(i + 1), Name: name})
	}

	var focused TagID
	if len(tags) > 0 {
		focused = tags[0].ID
	}

	return Screen{
		tags:    tags,
		focused: focused,
	}
}

func (s *Screen) Tags() []Tag {
	return slices.Clone(s.tags)
}

func (s *Screen) Tag(id TagID) (Tag, error) {
	idx := slices.IndexFunc(s.tags, func(t Tag) bool { return t.ID == id })
	if idx == -1 {
		return Tag{}, fmt.Errorf("tag %d: %w", id, ErrTagNotFound)
	}
	return s.tags[idx], nil
}

func (s *Screen) TagByName(name string) (Tag, error) {
	idx := slices.IndexFunc(s.tags, func(t Tag) bool { return t.Name == name })
	if idx == -1 {
		return Tag{}, fmt.Errorf("tag %q: %w", name, ErrTagNotFound)
	}
	return s.tags[idx], nil
}

func (s *Screen) FocusedTag() (Tag, error) {
	tag, err := s.Tag(s.focused)
	if err != nil {
		return Tag{}, ErrNoFocusedTag
	}
	return tag, nil
}

func (s *Screen) FocusTag(id TagID) error {
	if _, err := s.Tag(id); err != nil {
		return err
	}
	s.focused = id
	return nil
}
