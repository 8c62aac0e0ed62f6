package memory

import (
	"log/slog"

	"github.com/next-trace/scg-message-catalog/adapters/inmemory"
	"github.com/next-trace/scg-message-catalog/catalog"
	"github.com/next-trace/scg-message-catalog/gateway"
)

// New constructs a sealed catalog populated by register and a gateway delivering to the in-memory
// adapter. The adapter is returned so callers can inspect what was sent and appended.
func New(logger *slog.Logger, register ...func(*catalog.Catalog) error) (*gateway.Gateway, *inmemory.Adapter, error) {
	cat := catalog.New(catalog.WithLogger(logger))

	for _, r := range register {
		if err := r(cat); err != nil {
			return nil, nil, err
		}
	}

	cat.Seal()

	ad := inmemory.New()

	return gateway.New(cat, &ad.Sender, &ad.Appender, logger), ad, nil
}
