// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionCube(t *testing.T) {
	rs, err := Partition(36, 6)
	require.NoError(t, err)
	require.Len(t, rs, 6)
	for k, rg := range rs {
		assert.Equal(t, Range{First: 6 * k, Count: 6}, rg)
	}
	faces := make([]Face, len(rs))
	for i, rg := range rs {
		faces[i].Range = rg
	}
	assert.NoError(t, ValidateFaces(faces, 36))
	assert.ErrorIs(t, ValidateFaces(faces, 42), ErrInvalidFaces)
	assert.ErrorIs(t, ValidateFaces(faces[1:], 30), ErrInvalidFaces)

	uneven := []Face{{Range: Range{0, 6}}, {Range: Range{6, 12}}}
	assert.ErrorIs(t, ValidateFaces(uneven, 18), ErrInvalidFaces)
}

func TestPartitionInvalid(t *testing.T) {
	for _, tt := range [][2]int{{36, 5}, {36, 0}, {0, 1}, {-6, 6}, {6, -1}} {
		_, err := Partition(tt[0], tt[1])
		assert.ErrorIs(t, err, ErrInvalidFaces, "%v", tt)
	}
	rs, err := Partition(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 3}}, rs)
	assert.Equal(t, 3, rs[0].End())
}
