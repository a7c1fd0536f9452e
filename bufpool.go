package bsor

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses buffers for ReadFrom, which has to hold a whole replay
// in memory before decoding it.
var bytesBufPool = sync.Pool{
	New: func() any {
		// Replays with a few minutes of frames run to a few hundred KB.
		return bytes.NewBuffer(make([]byte, 0, 256*1024))
	},
}
