// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// Range is a contiguous run of indices (or vertices) in a draw.
type Range struct {
	First int
	Count int
}

// End returns one past the last element of the range.
func (rg Range) End() int { return rg.First + rg.Count }

// Face is a range of the draw sampled with one texture.
type Face struct {
	Range   Range
	Texture *Texture
}

// Partition splits n elements into count disjoint contiguous ranges of
// equal length that cover [0, n) in order.
func Partition(n, count int) ([]Range, error) {
	if count <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: %d elements into %d faces", ErrInvalidFaces, n, count)
	}
	if n%count != 0 {
		return nil, fmt.Errorf("%w: %d elements do not divide into %d equal faces", ErrInvalidFaces, n, count)
	}
	per := n / count
	rs := make([]Range, count)
	for i := range rs {
		rs[i] = Range{First: i * per, Count: per}
	}
	return rs, nil
}

// ValidateFaces checks that the face ranges are disjoint, contiguous,
// ordered and of equal length, and exactly cover [0, n).
func ValidateFaces(faces []Face, n int) error {
	next := 0
	for i, f := range faces {
		if f.Range.First != next || f.Range.Count <= 0 {
			return fmt.Errorf("%w: face %d range %v does not follow %d", ErrInvalidFaces, i, f.Range, next)
		}
		if f.Range.Count != faces[0].Range.Count {
			return fmt.Errorf("%w: face %d has %d elements, face 0 has %d", ErrInvalidFaces, i, f.Range.Count, faces[0].Range.Count)
		}
		next = f.Range.End()
	}
	if next != n {
		return fmt.Errorf("%w: faces cover %d of %d elements", ErrInvalidFaces, next, n)
	}
	return nil
}
