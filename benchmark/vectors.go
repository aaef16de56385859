// Package benchmark exercises the orientation delta strategies of spatialmath: it walks a recorded
// sensor sequence, times every computation path, checks them against known rotations and sweeps
// random orientations for disagreement between strategies.
package benchmark

import (
	_ "embed"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/rotation/spatialmath"
)

//go:embed data/sample_rotation_vectors.json5
var sampleDataset []byte

// SampleDataset returns the recorded sensor sequence bundled with the package.
func SampleDataset() ([]spatialmath.RotationVector, error) {
	return ParseVectors(sampleDataset)
}

// ParseVectors decodes a json5 array of rotation vectors and validates each of them.
func ParseVectors(data []byte) ([]spatialmath.RotationVector, error) {
	var raw [][]float64
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse rotation vectors")
	}
	vectors := make([]spatialmath.RotationVector, 0, len(raw))
	for i, v := range raw {
		rv := spatialmath.RotationVector(v)
		if err := rv.Validate(); err != nil {
			return nil, errors.Wrapf(err, "vector %d", i)
		}
		vectors = append(vectors, rv)
	}
	return vectors, nil
}

// GenerateVectors returns n three component rotation vectors with every component drawn uniformly
// from [0, 1). Most of them have a vector part longer than 1 and decode to a non-unit quaternion
// with w = 0; the efficiency benchmark times those as they come.
func GenerateVectors(n int, src rand.Source) []spatialmath.RotationVector {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: src}
	vectors := make([]spatialmath.RotationVector, n)
	for i := range vectors {
		vectors[i] = spatialmath.RotationVector{dist.Rand(), dist.Rand(), dist.Rand()}
	}
	return vectors
}

// GenerateQuaternions returns n quaternions with every component drawn uniformly from [0, 1).
// They are not normalized.
func GenerateQuaternions(n int, src rand.Source) []spatialmath.Quaternion {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: src}
	quats := make([]spatialmath.Quaternion, n)
	for i := range quats {
		quats[i] = spatialmath.NewQuaternion(dist.Rand(), dist.Rand(), dist.Rand(), dist.Rand())
	}
	return quats
}

// GenerateOrientations returns n four component rotation vectors of unit quaternions distributed
// uniformly over all orientations.
func GenerateOrientations(n int, src rand.Source) []spatialmath.RotationVector {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	vectors := make([]spatialmath.RotationVector, 0, n)
	for len(vectors) < n {
		q := spatialmath.NewQuaternion(dist.Rand(), dist.Rand(), dist.Rand(), dist.Rand())
		norm := q.Norm()
		if norm < 1e-9 {
			continue
		}
		vectors = append(vectors, q.Divide(norm).RotationVector())
	}
	return vectors
}

// NewSource returns the deterministic random source used for a given seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
