package dataset

// DefaultScale maps 8-bit pixel intensities to [0, 1].
const DefaultScale = 255

type options struct {
	scale  float32
	header bool
}

// Option configures CSV loading.
type Option func(o *options)

// WithScale sets the divisor applied to every pixel value.
func WithScale(scale float32) Option {
	return func(o *options) { o.scale = scale }
}

// WithHeader controls whether the first row is a header to skip.
func WithHeader(header bool) Option {
	return func(o *options) { o.header = header }
}

func newOptions(opts []Option) options {
	o := options{scale: DefaultScale, header: true}
	for _, fn := range opts {
		fn(&o)
	}
	if o.scale <= 0 {
		o.scale = DefaultScale
	}
	return o
}
