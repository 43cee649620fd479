// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package csr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	f := NewFile()

	val, err := f.Read(PMPADDR0)

	require.NoError(t, err)
	assert.Equal(t, uint32(0), val)

	require.NoError(t, f.Write(PMPADDR0, 0xdeadbeef))
	require.NoError(t, f.Write(MSECCFG, 0x7))

	val, err = f.Read(PMPADDR0)

	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), val)

	val, err = f.Read(MSECCFG)

	require.NoError(t, err)
	assert.Equal(t, uint32(0x7), val)

	// writes have no side effects beyond the target register
	val, err = f.Read(PMPADDR0 + 1)

	require.NoError(t, err)
	assert.Equal(t, uint32(0), val)
}
