package kanren

import "github.com/hashicorp/go-hclog"

// defaultLogger is a package-level fallback used when a State carries
// no explicit logger. hclog's null logger costs nothing on the hot
// path when logging is disabled, which is the common case for a
// library meant to be embedded (ported from the nomad/hclog idiom of
// never forcing a global logger on callers).
var defaultLogger = hclog.NewNullLogger()

// newNamedLogger derives a named sub-logger from base, or returns
// defaultLogger when base is nil. resolveOptions uses it to name the
// default logger "kanren"; a logger passed to WithLogger replaces that
// default and is not renamed.
func newNamedLogger(base hclog.Logger, name string) hclog.Logger {
	if base == nil {
		return defaultLogger
	}
	return base.Named(name)
}
