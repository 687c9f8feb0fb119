package config

// Version is the cinelake binary version.
// Set at build time via: -ldflags "-X github.com/cinelake/cinelake/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
