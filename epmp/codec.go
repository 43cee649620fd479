// Copyright (c) The opentitan authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package epmp

import (
	"fmt"
	"math/bits"
)

// pmpaddr registers hold physical addresses shifted right by two, the native
// matching granule being four bytes.
const addrShift = 2

// torBound reports whether the address slot of entry serves as the lower
// bound of a top of range region held by the following entry.
func (s *State) torBound(entry int) bool {
	if entry+1 >= NumRegions {
		return false
	}

	mode, _ := unpackCfg(s.Cfg[entry+1])

	return mode == MODE_TOR
}

// ConfigureOff disables address matching for entry. The region must be zero
// length, its start address is retained in the entry address slot. Neighboring
// entries are not inspected.
func (s *State) ConfigureOff(entry int, r Region, perm Perm) error {
	if entry < 0 || entry >= NumRegions {
		return fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	if r.Start != r.End {
		return fmt.Errorf("%w: region %#x-%#x must have zero length", ErrBadRegion, r.Start, r.End)
	}

	if r.Start%4 != 0 {
		return fmt.Errorf("%w: address %#x is not word aligned", ErrBadRegion, r.Start)
	}

	s.Addr[entry] = r.Start >> addrShift
	s.Cfg[entry] = packCfg(MODE_OFF, perm)

	return nil
}

// ConfigureTOR configures entry to match [Start, End) using top of range
// addressing. The upper bound lands in the entry's own address slot while the
// lower bound is held by the preceding entry: a preceding OFF entry has its
// address overwritten (its permissions are retained), a preceding TOR entry
// must already end exactly at Start. Entry 0 has no preceding slot and its
// region must start at address 0. When the following entry is itself TOR the
// entry's own slot holds that region's lower bound and must not move.
func (s *State) ConfigureTOR(entry int, r Region, perm Perm) error {
	if entry < 0 || entry >= NumRegions {
		return fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	if r.End < r.Start {
		return fmt.Errorf("%w: region %#x-%#x ends before it starts", ErrBadRegion, r.Start, r.End)
	}

	if r.Start%4 != 0 || r.End%4 != 0 {
		return fmt.Errorf("%w: region %#x-%#x is not word aligned", ErrBadRegion, r.Start, r.End)
	}

	if s.torBound(entry) && s.Addr[entry] != r.End>>addrShift {
		return fmt.Errorf("%w: address slot bounds a top of range entry", ErrConflict)
	}

	if entry == 0 {
		if r.Start != 0 {
			return fmt.Errorf("%w: entry 0 has no preceding slot, start must be 0", ErrConflict)
		}
	} else {
		mode, _ := unpackCfg(s.Cfg[entry-1])

		switch mode {
		case MODE_OFF:
			s.Addr[entry-1] = r.Start >> addrShift
		case MODE_TOR:
			if s.Addr[entry-1] != r.Start>>addrShift {
				return fmt.Errorf("%w: preceding range ends at %#x not %#x",
					ErrConflict, s.Addr[entry-1]<<addrShift, r.Start)
			}
		default:
			return fmt.Errorf("%w: preceding entry uses naturally aligned addressing", ErrConflict)
		}
	}

	s.Addr[entry] = r.End >> addrShift
	s.Cfg[entry] = packCfg(MODE_TOR, perm)

	return nil
}

// ConfigureNA4 configures entry to match a single four byte unit starting at
// Start. NA4 is only available when the hardware granularity is zero.
func (s *State) ConfigureNA4(entry int, r Region, perm Perm) error {
	if entry < 0 || entry >= NumRegions {
		return fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	if Granularity != 0 {
		return fmt.Errorf("%w: NA4 is unavailable with granularity %d", ErrBadRegion, Granularity)
	}

	if r.Start%4 != 0 || r.End != r.Start+4 {
		return fmt.Errorf("%w: region %#x-%#x is not a single aligned word", ErrBadRegion, r.Start, r.End)
	}

	if s.torBound(entry) {
		return fmt.Errorf("%w: address slot bounds a top of range entry", ErrConflict)
	}

	s.Addr[entry] = r.Start >> addrShift
	s.Cfg[entry] = packCfg(MODE_NA4, perm)

	return nil
}

// ConfigureNAPOT configures entry to match a naturally aligned power of two
// sized region of at least 8 bytes, aligned to its own span and, with a non
// zero granularity G, additionally to 2^(2+G). The encoded address selects
// the span through its low order run of one bits: a span of 2^k yields k-3 of
// them, the remaining high bits hold the base.
func (s *State) ConfigureNAPOT(entry int, r Region, perm Perm) error {
	if entry < 0 || entry >= NumRegions {
		return fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	if r.End < r.Start {
		return fmt.Errorf("%w: region %#x-%#x ends before it starts", ErrBadRegion, r.Start, r.End)
	}

	size := r.End - r.Start

	if size < 8 || size&(size-1) != 0 {
		return fmt.Errorf("%w: span %#x is not a power of two of at least 8 bytes", ErrBadRegion, size)
	}

	align := size

	if g := uint32(1) << (2 + Granularity); align < g {
		align = g
	}

	if r.Start%align != 0 {
		return fmt.Errorf("%w: region %#x-%#x is not aligned to %#x", ErrBadRegion, r.Start, r.End, align)
	}

	if s.torBound(entry) {
		return fmt.Errorf("%w: address slot bounds a top of range entry", ErrConflict)
	}

	s.Addr[entry] = (r.Start >> addrShift) | (size/8 - 1)
	s.Cfg[entry] = packCfg(MODE_NAPOT, perm)

	return nil
}

// Mode returns the address matching mode of entry, one of MODE_OFF,
// MODE_TOR, MODE_NA4 or MODE_NAPOT.
func (s *State) Mode(entry int) (int, error) {
	if entry < 0 || entry >= NumRegions {
		return 0, fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	mode, _ := unpackCfg(s.Cfg[entry])

	return int(mode), nil
}

// Decode recovers the region and permission encoded by entry, inverting the
// matching configure operation. For a top of range entry the lower bound is
// read back from the preceding address slot (0 for entry 0).
func (s *State) Decode(entry int) (r Region, perm Perm, err error) {
	if entry < 0 || entry >= NumRegions {
		return Region{}, 0, fmt.Errorf("%w: entry %d out of range", ErrBadArg, entry)
	}

	mode, perm := unpackCfg(s.Cfg[entry])

	switch mode {
	case MODE_OFF:
		r.Start = s.Addr[entry] << addrShift
		r.End = r.Start
	case MODE_TOR:
		if entry > 0 {
			r.Start = s.Addr[entry-1] << addrShift
		}

		r.End = s.Addr[entry] << addrShift
	case MODE_NA4:
		r.Start = s.Addr[entry] << addrShift
		r.End = r.Start + 4
	case MODE_NAPOT:
		ones := bits.TrailingZeros32(^s.Addr[entry])

		r.Start = (s.Addr[entry] &^ (uint32(1)<<ones - 1)) << addrShift
		r.End = r.Start + uint32(8)<<ones
	}

	return
}
