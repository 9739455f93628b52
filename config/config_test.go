package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.viam.com/test"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	test.That(t, os.WriteFile(path, []byte(body), 0o644), test.ShouldBeNil)
	return path
}

func TestLoadMissingOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile), true)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Default())

	_, err = Load(filepath.Join(t.TempDir(), DefaultFile), false)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
assets: https://example.com/public
language: zh
watch: true
window:
  width: 900
loader:
  timeout: 3s
  iconPolicy: partial
  placeholders: true
logLevel: debug
`)
	cfg, err := Load(path, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Assets, test.ShouldEqual, "https://example.com/public")
	test.That(t, cfg.RemoteAssets(), test.ShouldBeTrue)
	test.That(t, cfg.Language, test.ShouldEqual, "zh")
	test.That(t, cfg.Watch, test.ShouldBeTrue)
	test.That(t, cfg.Window.Width, test.ShouldEqual, 900)
	// untouched keys keep their defaults
	test.That(t, cfg.Window.Height, test.ShouldEqual, 860)
	test.That(t, cfg.Data, test.ShouldEqual, "public/data.json")
	test.That(t, cfg.Loader.Workers, test.ShouldEqual, 4)
	test.That(t, cfg.Loader.Timeout, test.ShouldEqual, 3*time.Second)
	test.That(t, cfg.Loader.IconPolicy, test.ShouldEqual, "partial")
	test.That(t, cfg.Loader.Placeholders, test.ShouldBeTrue)
	test.That(t, cfg.LogLevel, test.ShouldEqual, "debug")
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"window:\n  width: 0\n",
		"loader:\n  iconPolicy: some\n",
		"window:\n  background: red\n",
		"loader:\n  workers: -1\n",
		"assets: ''\n",
		"window: [1, 2]\n",
	} {
		_, err := Load(writeConfig(t, body), false)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	c, err := cfg.BackgroundColor()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, color.NRGBA{R: 0x82, G: 0x73, B: 0x5B, A: 0xff})

	cfg.Window.Background = ""
	c, err = cfg.BackgroundColor()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, color.NRGBA{})

	cfg.Assets = "public"
	test.That(t, cfg.RemoteAssets(), test.ShouldBeFalse)
}
