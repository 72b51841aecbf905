package progress

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStageSpinner(t *testing.T) {
	spinner := NewStageSpinner()
	assert.NotNil(t, spinner)
}

func TestStageSpinner(t *testing.T) {
	spinner := NewStageSpinner()
	assert.NoError(t, spinner.AddStage("ingest"))
	assert.NoError(t, spinner.AddStage("validate"))
	assert.Error(t, spinner.AddStage("ingest"))

	spinner.Start()
	assert.NoError(t, spinner.SetStatus("ingest", "done"))
	assert.NoError(t, spinner.SetStatus("validate", "running"))
	assert.Error(t, spinner.SetStatus("emit", "??"))
	spinner.Finish()
}
