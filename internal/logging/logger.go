// Package logging holds the library's single diagnostic logger. It is
// silent by default; callers opt in with lz4x.SetLogger.
package logging

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// Set installs l as the package-wide diagnostic logger.
func Set(l zerolog.Logger) { logger = l }

// Get returns the current diagnostic logger.
func Get() *zerolog.Logger { return &logger }
