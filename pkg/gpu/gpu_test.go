// pkg/gpu/gpu_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test GPU vendor classification and probe fallback

package gpu_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riceup/riceup/pkg/gpu"
	"github.com/riceup/riceup/pkg/testutil"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    gpu.Vendor
	}{
		{
			name:    "nvidia",
			listing: "01:00.0 VGA compatible controller: NVIDIA Corporation GA106 [GeForce RTX 3060]",
			want:    gpu.VendorNvidia,
		},
		{
			name:    "nvidia_lowercase",
			listing: "01:00.0 vga compatible controller: nvidia corporation",
			want:    gpu.VendorNvidia,
		},
		{
			name:    "amd",
			listing: "05:00.0 VGA compatible controller: Advanced Micro Devices, Inc. [AMD/ATI] Navi 23",
			want:    gpu.VendorAMD,
		},
		{
			name:    "radeon_only",
			listing: "05:00.0 VGA compatible controller: Radeon RX 580",
			want:    gpu.VendorAMD,
		},
		{
			name:    "intel",
			listing: "00:02.0 VGA compatible controller: Intel Corporation HD Graphics 620",
			want:    gpu.VendorIntel,
		},
		{
			name: "nvidia_wins_over_amd_and_intel",
			listing: `00:02.0 VGA compatible controller: Intel Corporation UHD Graphics
01:00.0 VGA compatible controller: NVIDIA Corporation TU117M
05:00.0 Audio device: Advanced Micro Devices, Inc. [AMD] HDMI`,
			want: gpu.VendorNvidia,
		},
		{
			name: "amd_wins_over_intel",
			listing: `00:02.0 VGA compatible controller: Intel Corporation UHD Graphics
05:00.0 VGA compatible controller: Advanced Micro Devices, Inc.`,
			want: gpu.VendorAMD,
		},
		{
			name:    "no_match",
			listing: "00:1f.3 Audio device: Some Other Vendor",
			want:    gpu.VendorNone,
		},
		{
			// "Corporation" contains "ati" and must not classify as amd
			name:    "corporation_is_not_ati",
			listing: "00:1f.0 ISA bridge: NEC Corporation uPD720200",
			want:    gpu.VendorNone,
		},
		{
			name:    "bracketed_amd_ati_tag",
			listing: "05:00.0 Display controller: [AMD/ATI] Lexa PRO",
			want:    gpu.VendorAMD,
		},
		{
			// "Intelligent" must not classify as intel
			name:    "marker_inside_word_does_not_match",
			listing: "03:00.0 System peripheral: Intelligent Platform Management Interface",
			want:    gpu.VendorNone,
		},
		{
			name:    "empty",
			listing: "",
			want:    gpu.VendorNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gpu.Detect(tt.listing))
		})
	}
}

func TestProbe(t *testing.T) {
	runner := &testutil.FakeRunner{
		Respond: func(testutil.Call) (string, error) {
			return "00:02.0 VGA compatible controller: Intel Corporation HD Graphics", nil
		},
	}

	vendor := gpu.NewProber(runner).Probe(context.Background())

	assert.Equal(t, gpu.VendorIntel, vendor)
	assert.Equal(t, []string{"lspci"}, runner.CommandLines())
}

func TestProbeLspciFailure(t *testing.T) {
	runner := &testutil.FakeRunner{
		Respond: func(testutil.Call) (string, error) {
			return "", errors.New("exec: lspci: not found")
		},
	}

	vendor := gpu.NewProber(runner).Probe(context.Background())

	assert.Equal(t, gpu.VendorNone, vendor)
}
