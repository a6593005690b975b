package testutil

import "fmt"

// IDSequence generates predictable document ids ("user_test_0000001",
// ...) in place of the random production format.
type IDSequence struct {
	n int
}

// NewIDSequence creates a sequence starting at 1.
func NewIDSequence() *IDSequence {
	return &IDSequence{}
}

// Next returns the next id for the given prefix.
func (s *IDSequence) Next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s_test_%07d", prefix, s.n)
}
