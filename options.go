package dcx

type config struct {
	limits Limits
	kraken KrakenCodec
}

// Option configures Decompress, Compress and Inspect.
type Option func(*config)

func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithKrakenCodec supplies the compressor used for DCX_KRAK containers.
// Without it those kinds fail with ErrNoKrakenCodec.
func WithKrakenCodec(k KrakenCodec) Option {
	return func(c *config) { c.kraken = k }
}

func newConfig(opts []Option) *config {
	cfg := &config{limits: defaultLimits()}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}
