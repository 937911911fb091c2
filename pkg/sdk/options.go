package docshelf

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Shelf.
type Option interface {
	apply(*shelfConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*shelfConfig)

func (f optionFunc) apply(c *shelfConfig) { f(c) }

type shelfConfig struct {
	source string // "file" or "valkey"

	path string

	addrs      []string
	password   string
	standalone bool
	key        string

	collation        string
	rejectDuplicates bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// DefaultKey is the Valkey key read by WithValkey when key is empty.
const DefaultKey = "docshelf:catalog"

// WithFile reads the catalog from a JSON file, or YAML for .yaml and .yml paths.
func WithFile(path string) Option {
	return optionFunc(func(c *shelfConfig) {
		c.source = "file"
		c.path = path
	})
}

// WithValkey reads the catalog as a JSON array stored under key on a Valkey instance.
func WithValkey(addr, password, key string) Option {
	return optionFunc(func(c *shelfConfig) {
		c.source = "valkey"
		c.addrs = []string{addr}
		c.password = password
		c.key = key
	})
}

// WithStandalone disables cluster topology discovery.
// Use for standalone Valkey instances (not managed by cluster operator).
func WithStandalone() Option {
	return optionFunc(func(c *shelfConfig) {
		c.standalone = true
	})
}

// WithCollation sets the BCP 47 language tag used to order titles. Default: "en".
func WithCollation(tag string) Option {
	return optionFunc(func(c *shelfConfig) {
		c.collation = tag
	})
}

// WithRejectDuplicates makes Open fail with ErrDuplicateID when two records share an id.
// By default duplicates are logged and Get returns the first in catalog order.
func WithRejectDuplicates() Option {
	return optionFunc(func(c *shelfConfig) {
		c.rejectDuplicates = true
	})
}

// WithLogger enables structured logging for catalog operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *shelfConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *shelfConfig) {
		c.metricsReg = reg
	})
}
