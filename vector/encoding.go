package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeFeatures encodes a feature vector into a BLOB representation suitable
// for storage in SQLite: a little-endian sequence of IEEE 754 float32 values
// without a length prefix. The length is derived from the BLOB size on decode.
func EncodeFeatures(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// DecodeFeatures decodes a BLOB produced by EncodeFeatures.
func DecodeFeatures(b []byte) (FeatureVector, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid features blob length %d (not multiple of 4)", len(b))
	}
	vec := make(FeatureVector, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
