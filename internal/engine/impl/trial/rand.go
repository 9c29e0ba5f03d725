package trial

import (
	"encoding/binary"
	"math/rand/v2"

	"Go2HashSpectra/internal/model"
)

// systemRand draws from the process-wide math/rand/v2 generator, which is
// safe for concurrent use. Trial keys only need uniformity, not
// unpredictability.
type systemRand struct{}

// SystemRand returns the default random source used by production runs.
func SystemRand() model.RandSource {
	return systemRand{}
}

func (systemRand) Fill(b []byte) {
	var chunk [8]byte
	for len(b) > 0 {
		binary.LittleEndian.PutUint64(chunk[:], rand.Uint64())
		n := copy(b, chunk[:])
		b = b[n:]
	}
}

func (systemRand) Uint64() uint64 {
	return rand.Uint64()
}
