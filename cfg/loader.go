package cfg

// Loader resolves the runtime configuration from somewhere: a yaml file,
// the environment, or fixed values in tests.
type Loader interface {
	Load() (*Config, error)
}
