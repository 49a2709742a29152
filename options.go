package intern

// Option configures an interner at construction. There is no runtime
// configuration surface; everything is fixed once the interner exists.
type Option func(*options)

type options struct {
	capacity int
	maxBytes uint64
}

// WithCapacity pre-sizes the dedup index and the slot sequence for about n
// distinct strings, avoiding growth on the way there.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithMaxBytes caps the total content bytes the arena will store. Interning
// past the cap fails with ErrArenaLimit. Zero, the default, means no cap.
func WithMaxBytes(n uint64) Option {
	return func(o *options) { o.maxBytes = n }
}
