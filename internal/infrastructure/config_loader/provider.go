package loader

import (
	"github.com/bionicotaku/lingo-services-greeting/internal/conf"

	"github.com/google/wire"
)

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideServiceMetadata,
	ProvideServerConfig,
	ProvideObservabilityConfig,
)

// ProvideServiceMetadata returns the resolved ServiceMetadata from the bundle.
func ProvideServiceMetadata(b *Bundle) ServiceMetadata {
	if b == nil {
		return ServiceMetadata{}
	}
	return b.Service
}

// ProvideServerConfig returns the server section of the bootstrap configuration.
func ProvideServerConfig(b *Bundle) *conf.Server {
	if b == nil || b.Bootstrap == nil {
		return nil
	}
	return b.Bootstrap.Server
}

// ProvideObservabilityConfig returns the observability section.
func ProvideObservabilityConfig(b *Bundle) *conf.Observability {
	if b == nil || b.Bootstrap == nil {
		return nil
	}
	return b.Bootstrap.Observability
}
