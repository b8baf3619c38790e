package app

import (
	"context"
	"time"

	"github.com/courtsight/chassis"
	"github.com/courtsight/chassis/faults"
	"github.com/courtsight/chassis/logging"
	"github.com/courtsight/chassis/perf"
)

// Typed keys for the core services the root registers.
var (
	RouterKey = chassis.NewKey[*logging.Router]("logging.router")
	FaultsKey = chassis.NewKey[*faults.Handler]("faults.handler")
	PerfKey   = chassis.NewKey[*perf.Monitor]("perf.monitor")
	ConfigKey = chassis.NewKey[Config]("app.config")
)

// Typed keys for the external collaborators the dashboard plugs in.
var (
	DataServiceKey   = chassis.NewKey[DataService]("data.service")
	ExporterKey      = chassis.NewKey[Exporter]("export.service")
	ThemeProviderKey = chassis.NewKey[ThemeProvider]("ui.theme")
	CacheStoreKey    = chassis.NewKey[CacheStore]("cache.store")
)

// DataService is the external sports-data fetching pipeline. Opaque to the
// chassis; failures report through the error middleware.
type DataService interface {
	Fetch(ctx context.Context, resource string) ([]byte, error)
}

// Exporter renders dashboard data into a downloadable document.
type Exporter interface {
	Export(ctx context.Context, name string, data any) ([]byte, error)
}

// ThemeProvider resolves UI theme settings by name.
type ThemeProvider interface {
	Theme(name string) map[string]string
}

// CacheStore is the dashboard's cache boundary.
type CacheStore interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
