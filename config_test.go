package bullet

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LibraryName != DefaultLibraryName {
		t.Errorf("LibraryName = %q", cfg.LibraryName)
	}
	if !cfg.Logging {
		t.Error("logging should default to on")
	}
	if cfg.Debug || cfg.LibraryPath != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvDefaults(t *testing.T) {
	cfg, err := ParseConfigEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("BULLET_LIBRARY_NAME", "bullet-custom")
	t.Setenv("BULLET_LIBRARY_PATH", "/tmp/libbullet.so")
	t.Setenv("BULLET_LOGGING", "false")
	t.Setenv("BULLET_DEBUG", "true")

	cfg, err := ParseConfigEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		LibraryName: "bullet-custom",
		LibraryPath: "/tmp/libbullet.so",
		Logging:     false,
		Debug:       true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFromEnvFallsBack(t *testing.T) {
	t.Setenv("BULLET_LOGGING", "sometimes")
	t.Setenv("BULLET_LIBRARY_NAME", "ignored")

	if _, err := ParseConfigEnv(); err == nil {
		t.Fatal("expected parse error")
	}
	if cfg := LoadConfigFromEnv(); cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestConfigLibraryPath(t *testing.T) {
	if got := (Config{}).libraryPath(); got != MapLibraryName(DefaultLibraryName) {
		t.Errorf("empty config path = %q", got)
	}
	if got := (Config{LibraryName: "x", LibraryPath: "/y"}).libraryPath(); got != "/y" {
		t.Errorf("path = %q, want /y", got)
	}
}
