package version

// Version is overridden at build time with -ldflags "-X github.com/bnema/altoro-cli/internal/version.Version=...".
var Version = "dev"
