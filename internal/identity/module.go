package identity

import "go.uber.org/fx"

// Module provides the identity resolver via fx.
var Module = fx.Provide(
	func() Provider { return NewHeaderProvider() },
)
