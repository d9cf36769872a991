package logger

import "go.uber.org/fx"

// Module provides the shared slog logger to the application graph.
var Module = fx.Provide(New)
