package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/chipmap/pkg/banks"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"json,text", []string{"json", "text"}},
		{"svg,png,dot", []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"input fallback", "", "boards/lpc1768.toml", "boards/lpc1768"},
		{"input without extension", "", "lpc1768", "lpc1768"},
		{"output with format extension", "out.svg", "chip.toml", "out"},
		{"output with txt extension", "out.txt", "chip.toml", "out"},
		{"output without extension", "out", "chip.toml", "out"},
		{"output with foreign extension", "map.backup", "chip.toml", "map.backup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		output      string
		format      string
		formatCount int
		want        string
	}{
		{"explicit single output kept verbatim", "out", "out.svg", "svg", 1, "out.svg"},
		{"derived single output", "chip", "", "svg", 1, "chip.svg"},
		{"multiple formats", "chip", "chip", "json", 2, "chip.json"},
		{"text uses txt extension", "chip", "", "text", 2, "chip.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.base, tt.output, tt.format, tt.formatCount); got != tt.want {
				t.Errorf("artifactPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBankParams(t *testing.T) {
	p, err := parseBankParams("64K", "16", "16K", "8")
	if err != nil {
		t.Fatalf("parseBankParams: %v", err)
	}
	want := banks.Params{
		MemoryCapacity: 64 << 10,
		MemoryWordSize: 16,
		ChipCapacity:   16 << 10,
		ChipWordSize:   8,
	}
	if p != want {
		t.Errorf("params = %+v, want %+v", p, want)
	}

	if _, err := parseBankParams("64Q", "16", "16K", "8"); err == nil {
		t.Error("bad suffix should fail")
	}
	if _, err := parseBankParams("64K", "", "16K", "8"); err == nil {
		t.Error("empty value should fail")
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(os.TempDir(), "xdg-test"))
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	want := filepath.Join(os.TempDir(), "xdg-test", "chipmap")
	if dir != want {
		t.Errorf("cacheDir = %q, want %q", dir, want)
	}
}
