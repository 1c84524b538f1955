package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsCopy(t *testing.T) {
	cfg := Default()
	cfg.Tags[0] = "changed"
	if Default().Tags[0] == "changed" {
		t.Error("Default() shares slices")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fn   func(cfg *Config)
	}{
		{"no tags", func(cfg *Config) { cfg.Tags = nil }},
		{"duplicate tag", func(cfg *Config) { cfg.Tags = []string{"a", "a"} }},
		{"unknown action", func(cfg *Config) { cfg.Keybinds[0].Action = "explode" }},
		{"unknown modifier", func(cfg *Config) { cfg.Keybinds[0].Mods = []string{"hyper"} }},
		{"spawn without command", func(cfg *Config) { cfg.Keybinds[0].Arg = "" }},
		{"unknown tag", func(cfg *Config) {
			cfg.Keybinds = append(cfg.Keybinds, Keybind{Key: 20, Action: ActionTag, Arg: "nope"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.fn(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestModMask(t *testing.T) {
	kb := Keybind{Mods: []string{"mod4", "shift"}}
	mask, err := kb.ModMask()
	if err != nil {
		t.Fatal(err)
	}
	if mask != xproto.ModMask4|xproto.ModMaskShift {
		t.Errorf("mask = %#x", mask)
	}
}

func TestStoreWritesDefault(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			store, err := NewStore(NewDriver(path))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("default config not written: %v", err)
			}

			cfg, err := store.GetConfig()
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(cfg.Tags, Default().Tags) {
				t.Errorf("Tags = %v", cfg.Tags)
			}
			if len(cfg.Keybinds) != len(Default().Keybinds) {
				t.Errorf("Keybinds = %v", cfg.Keybinds)
			}
		})
	}
}

func TestStoreReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `tags: [web, code]
border:
  width: 2
  focused: 0xff0000
  normal: 0x000000
keybinds:
  - key: 36
    mods: [mod1]
    action: spawn
    arg: alacritty
  - key: 10
    mods: [mod1]
    action: tag
    arg: code
autostart:
  - picom --daemon
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(NewDriver(path))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(cfg.Tags, []string{"web", "code"}) {
		t.Errorf("Tags = %v", cfg.Tags)
	}
	if cfg.Border.Focused != 0xff0000 || cfg.Border.Width != 2 {
		t.Errorf("Border = %+v", cfg.Border)
	}
	if len(cfg.Keybinds) != 2 || cfg.Keybinds[0].Arg != "alacritty" || cfg.Keybinds[0].Key != 36 {
		t.Errorf("Keybinds = %+v", cfg.Keybinds)
	}
	if !slices.Equal(cfg.Autostart, []string{"picom --daemon"}) {
		t.Errorf("Autostart = %v", cfg.Autostart)
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tags: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(NewDriver(path))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetConfig(); err == nil {
		t.Error("expected error")
	}
}

func TestUpdateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := NewStore(NewDriver(path))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateConfig(func(cfg Config) (Config, error) {
		cfg.Autostart = append(cfg.Autostart, "nitrogen --restore")
		return cfg, nil
	}); err != nil {
		t.Fatal(err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Autostart, []string{"nitrogen --restore"}) {
		t.Errorf("Autostart = %v", cfg.Autostart)
	}
}
