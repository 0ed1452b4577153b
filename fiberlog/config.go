package fiberlog

import "github.com/sirupsen/logrus"

// Config selects the logger and the per-request fields the middleware emits.
type Config struct {
	// Logger receives the request entries. When nil the package-level
	// standard logger is used.
	Logger *logrus.Logger
	// Tags names the fields attached to every entry, see tags.go for the
	// known tags. Unknown tags are ignored.
	Tags []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
