// Package buildinfo carries release metadata stamped in with
// -ldflags "-X github.com/acqtools/paymentproc/internal/buildinfo.Version=...".
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build time.
	Date = "unknown"
)
