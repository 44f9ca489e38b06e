// Package version carries build metadata stamped via -ldflags.
package version

var (
	// Product is the identifier written into the GEDCOM header SOUR line.
	Product = "ROOTLINE"
	// Name is the human-readable product name.
	Name = "Rootline"
	// Version is overridden at build time.
	Version = "0.1.0-dev"
)
