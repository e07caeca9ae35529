package store

// Observer receives table events as they happen. Implementations must not
// call back into the table that notifies them.
type Observer interface {
	Collision(index uint64, key string)
	Rehash(oldCapacity, newCapacity uint64)
}

type nopObserver struct{}

func (nopObserver) Collision(uint64, string) {}
func (nopObserver) Rehash(uint64, uint64) {}

type ObserverFuncs struct {
	OnCollision func(index uint64, key string)
	OnRehash    func(oldCapacity, newCapacity uint64)
}

func (o ObserverFuncs) Collision(index uint64, key string) {
	if o.OnCollision != nil {
		o.OnCollision(index, key)
	}
}

func (o ObserverFuncs) Rehash(oldCapacity, newCapacity uint64) {
	if o.OnRehash != nil {
		o.OnRehash(oldCapacity, newCapacity)
	}
}

type options struct {
	observer Observer
}

type Option func(*options)

func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
