// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierAccepts(t *testing.T) {
	assert.NoError(t, Identifier("p", "shell"))
	assert.NoError(t, Identifier("p", "_private"))
	assert.NoError(t, Identifier("p", "Thread_1"))
}

func TestIdentifierRejects(t *testing.T) {
	assert.Error(t, Identifier("p", "1thread"))
	assert.Error(t, Identifier("p", "has space"))
	assert.Error(t, Identifier("p", ""))
	assert.Error(t, Identifier("p", "has-dash"))
}
