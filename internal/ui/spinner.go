package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr so stdout stays usable for markup.
type Spinner struct {
	spinner *spinner.Spinner
}

func NewSpinner() *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &Spinner{spinner: s}
}

func (s *Spinner) Start(message string) {
	s.spinner.Suffix = " " + message
	s.spinner.Start()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// WithSpinner shows a spinner with message while fn runs.
func WithSpinner(message string, fn func() error) error {
	s := NewSpinner()
	s.Start(message)
	defer s.Stop()
	return fn()
}

// WithSpinnerValue is WithSpinner for functions returning a value.
func WithSpinnerValue[T any](message string, fn func() (T, error)) (T, error) {
	s := NewSpinner()
	s.Start(message)
	defer s.Stop()
	return fn()
}
