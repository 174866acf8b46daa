package mock

import "github.com/fwojciec/sangga"

var _ sangga.SeenSet = (*SeenSet)(nil)

// SeenSet is a mock implementation of sangga.SeenSet.
type SeenSet struct {
	SeenFn func(p *sangga.Property) bool
	MarkFn func(p *sangga.Property)
}

func (s *SeenSet) Seen(p *sangga.Property) bool {
	return s.SeenFn(p)
}

func (s *SeenSet) Mark(p *sangga.Property) {
	s.MarkFn(p)
}
