package entities

import (
	"fmt"
	"slices"
)

// DType names the element type of an observation space.
type DType string

const (
	DTypeFloat32 DType = "float32"
	DTypeFloat64 DType = "float64"
	DTypeInt64   DType = "int64"
	DTypeUint8   DType = "uint8"
)

// BoxSpace declares a bounded, fixed-shape numeric observation space.
// It is a contract description used by host-side tooling; nothing here enforces
// it against what a sensor actually returns.
type BoxSpace struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Shape []int   `json:"shape"`
	DType DType   `json:"dtype"`
}

// NewBoxSpace returns a BoxSpace with a private copy of shape.
func NewBoxSpace(low, high float64, shape []int, dtype DType) BoxSpace {
	return BoxSpace{
		Low:   low,
		High:  high,
		Shape: slices.Clone(shape),
		DType: dtype,
	}
}

// Size returns the number of scalar slots in the space.
func (b BoxSpace) Size() int {
	if len(b.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range b.Shape {
		n *= d
	}
	return n
}

// Equal reports whether two spaces declare the same bounds, shape and dtype.
func (b BoxSpace) Equal(other BoxSpace) bool {
	return b.Low == other.Low &&
		b.High == other.High &&
		b.DType == other.DType &&
		slices.Equal(b.Shape, other.Shape)
}

func (b BoxSpace) String() string {
	return fmt.Sprintf("Box(%g, %g, %v, %s)", b.Low, b.High, b.Shape, b.DType)
}
