package orchestrator

import "errors"

var ErrCatalogUnavailable = errors.New("catalog unavailable and no fallback configured")
