package version

// Version is the camfleet release version. Overridden at build time via
// -ldflags "-X camfleet/src/version.Version=...".
var Version = "0.3.0"
