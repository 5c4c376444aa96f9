// Package version provides build-time version information for docstore
// binaries.
//
// # Version Variables
//
// These variables are set at build time using ldflags:
//
//	var (
//	    Version  = "0.0.0"   // Semantic version from git tags
//	    Revision = "unknown" // Git commit hash (short)
//	    BuiltAt  = "unknown" // Build timestamp
//	)
//
// # Build Integration
//
// Set version information during build with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/docstore/version.Version=1.2.3 \
//	  -X github.com/ncobase/docstore/version.Revision=abc123 \
//	  -X 'github.com/ncobase/docstore/version.BuiltAt=$(date)'"
//
// Anything not stamped is filled from the build info the Go toolchain
// embeds in the binary.
//
// # Retrieving Version Info
//
// Get structured version information:
//
//	info := version.GetVersionInfo()
//	fmt.Printf("Version: %s\n", info.Version)
//	fmt.Printf("Revision: %s\n", info.Revision)
//
// Or print directly:
//
//	version.Print()
package version
