package digitring

const (
	// DefaultBase is the base of rings built without UseBase.
	DefaultBase = 16
	// MinBase and MaxBase bound the supported bases. Digits above 9 render
	// as 'A'..'Z', which caps the base at 36.
	MinBase = 2
	MaxBase = 36
)

type config struct {
	base    int
	baseSet bool
}

type Option func(*config) error

// UseBase sets the base of the ring being built.
func UseBase(base int) Option {
	return func(c *config) error {
		if err := checkBase(base); err != nil {
			return err
		}
		c.base = base
		c.baseSet = true
		return nil
	}
}

func checkBase(base int) error {
	if base < MinBase || base > MaxBase {
		return invalidArgumentError("base must be in [%d, %d], is %d", MinBase, MaxBase, base)
	}
	return nil
}

func defaultConfig() *config {
	return &config{
		base: DefaultBase,
	}
}

func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
