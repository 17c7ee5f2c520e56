package buildctx

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testOptions() Options {
	return Options{
		RootDir:      "/proj",
		ChromiumSrc:  "/proj/chromium_src",
		Architecture: "arm64",
		BuildType:    "debug",
		Metadata:     DefaultMetadata(),
	}
}

func TestNew(t *testing.T) {
	before := time.Now()
	ctx, err := New(testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if ctx.RootDir() != "/proj" {
		t.Fatalf("root = %q", ctx.RootDir())
	}
	if ctx.ChromiumSrc() != "/proj/chromium_src" {
		t.Fatalf("chromium src = %q", ctx.ChromiumSrc())
	}
	if ctx.StartTime().Before(before) || ctx.StartTime().After(time.Now()) {
		t.Fatalf("start time %v not captured at construction", ctx.StartTime())
	}
}

func TestBehaviorFlags(t *testing.T) {
	opts := testOptions()
	opts.ApplyPatches = true
	opts.Build = true
	opts.Package = true

	ctx, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !ctx.ApplyPatches() || !ctx.Build() || !ctx.Package() {
		t.Fatal("enabled behavior flags not carried into the context")
	}
	if ctx.Sign() {
		t.Fatal("sign flag should stay disabled when not requested")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{
			name:   "empty root",
			mutate: func(o *Options) { o.RootDir = "" },
		},
		{
			name:   "empty chromium src",
			mutate: func(o *Options) { o.ChromiumSrc = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)

			_, err := New(opts)
			if !errors.Is(err, ErrContext) {
				t.Fatalf("err = %v, want ErrContext", err)
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	ctx, err := New(testOptions())
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join("/proj/chromium_src", "out", "Default_arm64"); ctx.OutDir() != want {
		t.Fatalf("out dir = %q, want %q", ctx.OutDir(), want)
	}
	if want := filepath.Join("/proj/chromium_src", "third_party", "sparkle"); ctx.SparkleDir() != want {
		t.Fatalf("sparkle dir = %q, want %q", ctx.SparkleDir(), want)
	}
	if want := filepath.Join("/proj", "patches"); ctx.PatchesDir() != want {
		t.Fatalf("patches dir = %q, want %q", ctx.PatchesDir(), want)
	}
	if want := filepath.Join("/proj", "dist"); ctx.DistDir() != want {
		t.Fatalf("dist dir = %q, want %q", ctx.DistDir(), want)
	}
}

func TestSparkleURL(t *testing.T) {
	opts := testOptions()
	opts.Metadata.SparkleVersion = "2.6.4"

	ctx, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	url := ctx.SparkleURL()
	if !strings.Contains(url, "2.6.4") {
		t.Fatalf("sparkle url %q missing version", url)
	}
	if !strings.HasSuffix(url, ".tar.xz") {
		t.Fatalf("sparkle url %q should point at a tar.xz archive", url)
	}
}

func TestPlatformNames(t *testing.T) {
	tests := []struct {
		name        string
		platform    Platform
		chromiumApp string
		productApp  string
	}{
		{
			name:        "mac",
			platform:    PlatformMac,
			chromiumApp: "Chromium.app",
			productApp:  "Nxtscape.app",
		},
		{
			name:        "windows",
			platform:    PlatformWindows,
			chromiumApp: "chrome.exe",
			productApp:  "BrowserOS.exe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.Platform = tt.platform

			ctx, err := New(opts)
			if err != nil {
				t.Fatal(err)
			}

			if ctx.ChromiumAppName() != tt.chromiumApp {
				t.Fatalf("chromium app = %q, want %q", ctx.ChromiumAppName(), tt.chromiumApp)
			}
			if ctx.ProductAppName() != tt.productApp {
				t.Fatalf("product app = %q, want %q", ctx.ProductAppName(), tt.productApp)
			}
		})
	}
}

func TestVersionsFromMetadata(t *testing.T) {
	opts := testOptions()
	opts.Metadata = Metadata{
		ChromiumVersion: "140.0.1.2",
		ProductVersion:  "9.9.9",
	}

	ctx, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	if ctx.ChromiumVersion() != "140.0.1.2" {
		t.Fatalf("chromium version = %q", ctx.ChromiumVersion())
	}
	if ctx.ProductVersion() != "9.9.9" {
		t.Fatalf("product version = %q", ctx.ProductVersion())
	}
}
