package mock

import seatsync "github.com/elliotttmiller/seatsync"

var _ seatsync.DisguiseRotator = (*DisguiseRotator)(nil)

// DisguiseRotator is a mock implementation of seatsync.DisguiseRotator.
type DisguiseRotator struct {
	NextFn func() *seatsync.DisguiseProfile
}

func (r *DisguiseRotator) Next() *seatsync.DisguiseProfile {
	return r.NextFn()
}
