// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

/*
Package progress reports the generator pipeline's stage-by-stage progress
to the terminal: one line per stage (ingest, validate, align, place,
synthesize page tables, assign capabilities, emit, report), ticking a spinner glyph
while the stage is active and freezing once it reports a final status.
*/
package progress

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

var spinChars = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

type stageState struct {
	label       string
	status      string
	statusIsNew bool
	spinIndex   int
}

// StageSpinner draws one line per pipeline stage, updated as each stage
// reports status.
type StageSpinner struct {
	stages   []stageState
	ticker   *time.Ticker
	done     chan bool
	spinning bool
}

// NewStageSpinner creates an empty StageSpinner.
func NewStageSpinner() *StageSpinner {
	return &StageSpinner{done: make(chan bool)}
}

// AddStage registers a pipeline stage by name. Names must be unique.
func (s *StageSpinner) AddStage(label string) error {
	for _, stage := range s.stages {
		if stage.label == label {
			return fmt.Errorf("stage with label %s already exists", label)
		}
	}
	s.stages = append(s.stages, stageState{label: label, status: "pending"})
	return nil
}

// Start begins ticking the spinner glyphs.
func (s *StageSpinner) Start() {
	s.draw(true)
	s.ticker = time.NewTicker(250 * time.Millisecond)
	s.spinning = true
	go s.onTick()
}

// Finish stops ticking and draws a final frame.
func (s *StageSpinner) Finish() {
	if s.spinning {
		s.ticker.Stop()
		s.done <- true
		s.draw(false)
		s.spinning = false
	}
}

// SetStatus updates the reported status of a named stage.
func (s *StageSpinner) SetStatus(label, status string) error {
	for i, stage := range s.stages {
		if stage.label == label {
			if status != stage.status {
				s.stages[i].status = status
				s.stages[i].statusIsNew = true
			}
			return nil
		}
	}
	return fmt.Errorf("no such stage: %s", label)
}

func (s *StageSpinner) onTick() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.draw(true)
		}
	}
}

func (s *StageSpinner) draw(goUp bool) {
	for i, stage := range s.stages {
		if !term.IsTerminal(int(os.Stderr.Fd())) && !stage.statusIsNew {
			continue
		}
		fmt.Fprintf(os.Stderr, "%-24s  %s  %-32s\n", stage.label, spinChars[stage.spinIndex], stage.status)
		s.stages[i].statusIsNew = false
		s.stages[i].spinIndex++
		if s.stages[i].spinIndex >= len(spinChars) {
			s.stages[i].spinIndex = 0
		}
	}
	if goUp && term.IsTerminal(int(os.Stderr.Fd())) {
		for range s.stages {
			fmt.Fprintf(os.Stderr, "\x1b[1A")
		}
	}
}
