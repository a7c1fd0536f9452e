package bsor

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Order is the byte order of every scalar in a replay.
var Order = binary.LittleEndian

// MaxStringLength is the largest length prefix ReadString accepts before it
// assumes it is misaligned and starts scanning forward.
const MaxStringLength = 300

// nameBoundaryLengths are the byte lengths of the platform field that follows
// the player name ("steam", "oculus", "oculuspc"). ReadName scans for one of
// them to find where the name really ends. These are quirks observed in
// recorded files, not values derivable from the format.
var nameBoundaryLengths = [...]int32{5, 6, 8}

func isNameBoundary(v int32) bool {
	for _, n := range nameBoundaryLengths {
		if v == n {
			return true
		}
	}
	return false
}

// scalar is any fixed-width number the primitive layer reads.
type scalar interface {
	constraints.Integer | constraints.Float
}

// clampCount converts a wire count to a usable length; negative counts mean
// an empty list.
func clampCount[T constraints.Signed](n T) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
