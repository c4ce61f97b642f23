//
//  Copyright © Manetu Inc. All rights reserved.
//

package version

// These variables are set at build time via -ldflags
var (
	// Version is the release version (e.g., v2.0.0) or "dev" for local builds
	Version = "dev"
)

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// UserAgent returns the client identifier sent with every request, e.g.
// "regulateai-go-sdk/v2.0.0".
func UserAgent(product string) string {
	return product + "-go-sdk/" + Version
}
