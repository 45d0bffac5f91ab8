package engine

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/viant/vec/search"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once
var registerErr error

// RegisterVectorFunctions registers vec_l2 with the driver so it is available
// on connections opened after this call. Existing open connections will not
// see the function. Calling it more than once is safe.
func RegisterVectorFunctions() error {
	registerOnce.Do(func() {
		err := sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl)
		if err != nil && !strings.Contains(err.Error(), "already registered") {
			registerErr = err
		}
	})
	return registerErr
}

func asFeatures(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeFeatures(v)
	default:
		return nil, fmt.Errorf("vec_l2: unsupported argument type %T for features; want BLOB", arg)
	}
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_l2: expected 2 arguments, got %d", len(args))
	}
	a, err := asFeatures(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFeatures(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("vec_l2: dimension mismatch %d vs %d", len(a), len(b))
	}
	// Same kernel as vector.L2Distance so SQL and in-memory orderings agree.
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

// decodeFeatures reads a little-endian float32 BLOB as written by
// vector.EncodeFeatures.
func decodeFeatures(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vec_l2: invalid features blob length %d", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
