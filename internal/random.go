package internal

import (
	"math/rand"
	"time"
)

// RandomSource provides the bytes used by RND Vx, kk.
type RandomSource interface {
	Byte() uint8
}

// MathRandomSource draws uniformly distributed bytes from math/rand.
type MathRandomSource struct {
	rnd *rand.Rand
}

// NewMathRandomSource returns a source seeded from the current time.
func NewMathRandomSource() *MathRandomSource {
	return NewSeededRandomSource(time.Now().UnixNano())
}

// NewSeededRandomSource returns a deterministic source for the given seed.
func NewSeededRandomSource(seed int64) *MathRandomSource {
	return &MathRandomSource{rnd: rand.New(rand.NewSource(seed))}
}

// Byte returns a random byte in [0, 255].
func (s *MathRandomSource) Byte() uint8 {
	return uint8(s.rnd.Intn(256))
}
