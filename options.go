package montepi

// Option configures a Simulation during creation.
//
// Example:
//
//	sim, err := montepi.New(512, 512,
//		montepi.WithSeed(7),
//		montepi.WithSurface(texture),
//	)
type Option func(*options)

type options struct {
	seed    uint32
	inside  Color
	outside Color
	surface Surface
}

func defaultOptions() options {
	return options{
		seed:    0,
		inside:  DefaultInsideColor,
		outside: DefaultOutsideColor,
	}
}

// WithSeed sets the initial generator state. The default is 0.
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithColors sets the inside-circle and outside-circle sample colors.
func WithColors(inside, outside Color) Option {
	return func(o *options) {
		o.inside = inside
		o.outside = outside
	}
}

// WithSurface sets the surface that receives every resolved frame and every
// reset. Without one the pixels are only kept in memory.
func WithSurface(s Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}
