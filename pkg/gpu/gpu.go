// Package gpu classifies the host's graphics hardware so the installer
// can pick the matching driver packages.
package gpu

import (
	"context"
	"strings"
	"unicode"

	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/logging"
)

// Vendor is one of a closed set of GPU vendors.
type Vendor string

const (
	VendorNvidia Vendor = "nvidia"
	VendorAMD    Vendor = "amd"
	VendorIntel  Vendor = "intel"
	VendorNone   Vendor = "none"
)

// vendorMarkers maps each vendor to the words that identify it in a
// device listing. Checked in priority order: nvidia, then amd, then
// intel. First match wins. Markers match whole words only: "ati" must
// hit the [AMD/ATI] tag, not the middle of "Corporation".
var vendorMarkers = []struct {
	vendor  Vendor
	markers []string
}{
	{VendorNvidia, []string{"nvidia"}},
	{VendorAMD, []string{"amd", "ati", "radeon", "advanced micro devices"}},
	{VendorIntel, []string{"intel"}},
}

// Detect classifies a free-text device listing (lspci output) into
// exactly one vendor. Matching is case-insensitive and word-bounded;
// no match yields VendorNone. Pure function.
func Detect(listing string) Vendor {
	normalized := " " + tokenize(listing) + " "

	for _, vm := range vendorMarkers {
		for _, marker := range vm.markers {
			if strings.Contains(normalized, " "+marker+" ") {
				return vm.vendor
			}
		}
	}

	return VendorNone
}

// tokenize lowercases the listing and reduces it to space-separated
// alphanumeric words, so punctuation like "[AMD/ATI]" or "Inc." never
// glues tokens together.
func tokenize(listing string) string {
	words := strings.FieldsFunc(strings.ToLower(listing), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}

// Prober obtains a device listing from the hardware enumerator.
type Prober struct {
	runner cmdrun.Runner
}

// NewProber creates a Prober using the given runner.
func NewProber(runner cmdrun.Runner) *Prober {
	return &Prober{runner: runner}
}

// Probe runs lspci and classifies its output. A missing or failing
// lspci is not fatal: it yields VendorNone so provisioning proceeds
// without vendor driver packages.
func (p *Prober) Probe(ctx context.Context) Vendor {
	logger := logging.GetLogger("gpu")

	out, err := p.runner.Run(ctx, "", "lspci")
	if err != nil {
		logger.Warn().Err(err).Msg("lspci failed, assuming no discrete GPU")
		return VendorNone
	}

	vendor := Detect(out)
	logger.Debug().Str("vendor", string(vendor)).Msg("GPU detected")
	return vendor
}
