package worklog

// DefaultMaxRangeSpan bounds how many chapters a single range token may expand to.
const DefaultMaxRangeSpan = 1000

type options struct {
	rangeExpansion bool
	maxRangeSpan   int
}

// Option configures the grammar used by Parse.
type Option func(*options)

// WithRangeExpansion selects the grammar that reads "100-105" as a chapter
// range. When disabled, hyphens only separate a name from its numbers and
// tokens containing anything but digits are dropped.
func WithRangeExpansion(enabled bool) Option {
	return func(o *options) {
		o.rangeExpansion = enabled
	}
}

// WithMaxRangeSpan overrides DefaultMaxRangeSpan. Values below 1 are ignored.
func WithMaxRangeSpan(span int) Option {
	return func(o *options) {
		if span > 0 {
			o.maxRangeSpan = span
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxRangeSpan: DefaultMaxRangeSpan}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
