// Package session holds the in-progress answers of a web assessment run.
package session

import (
	"context"
	"errors"
)

var ErrComplete = errors.New("all questions already answered")

// State is one client's progress through a question set.
type State struct {
	Cursor     int    `json:"cursor"`
	Answers    []bool `json:"answers"`
	RecordPath string `json:"record_path,omitempty"`
}

// New returns a state positioned at the first question.
func New() *State {
	return &State{Answers: []bool{}}
}

// Reset discards all answers and returns the cursor to the first question.
// Start and restart both go through here.
func (s *State) Reset() {
	s.Cursor = 0
	s.Answers = []bool{}
	s.RecordPath = ""
}

// Complete reports whether every one of total questions has been answered.
func (s *State) Complete(total int) bool {
	return s.Cursor >= total
}

// Advance records the answer to the current question and moves the cursor on.
// It reports whether the run is now complete.
func (s *State) Advance(answer bool, total int) (bool, error) {
	if s.Complete(total) {
		return true, ErrComplete
	}
	s.Answers = append(s.Answers, answer)
	s.Cursor++
	return s.Complete(total), nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Answers = append([]bool{}, s.Answers...)
	return &c
}

// Store persists session state between requests. Load of an unknown id
// returns a fresh state, not an error.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, s *State) error
	Delete(ctx context.Context, id string) error
	Close() error
}
