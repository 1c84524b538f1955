package config

import (
	"fmt"
	"slices"

	"github.com/jezek/xgb/xproto"
)

const (
	ActionSpawn     = "spawn"
	ActionKill      = "kill"
	ActionTag       = "tag"
	ActionFocusNext = "focus-next"
	ActionQuit      = "quit"
)

var actions = []string{ActionSpawn, ActionKill, ActionTag, ActionFocusNext, ActionQuit}

var modifiers = map[string]uint16{
	"shift":   xproto.ModMaskShift,
	"lock":    xproto.ModMaskLock,
	"control": xproto.ModMaskControl,
	"mod1":    xproto.ModMask1,
	"mod2":    xproto.ModMask2,
	"mod3":    xproto.ModMask3,
	"mod4":    xproto.ModMask4,
	"mod5":    xproto.ModMask5,
}

var defaultConfig = Config{
	Tags: []string{"1", "2", "3", "4"},
	Border: Border{
		Width:   1,
		Focused: 0x5294e2,
		Normal:  0x2f343f,
	},
	Keybinds: []Keybind{
		{Key: 36, Mods: []string{"mod4"}, Action: ActionSpawn, Arg: "xterm"}, // <return>
		{Key: 24, Mods: []string{"mod4", "shift"}, Action: ActionKill},       // q
		{Key: 23, Mods: []string{"mod4"}, Action: ActionFocusNext},           // <tab>
		{Key: 10, Mods: []string{"mod4"}, Action: ActionTag, Arg: "1"},       // 1
		{Key: 11, Mods: []string{"mod4"}, Action: ActionTag, Arg: "2"},       // 2
		{Key: 12, Mods: []string{"mod4"}, Action: ActionTag, Arg: "3"},       // 3
		{Key: 13, Mods: []string{"mod4"}, Action: ActionTag, Arg: "4"},       // 4
		{Key: 26, Mods: []string{"mod4", "shift"}, Action: ActionQuit},       // e
	},
	Autostart: []string{},
}

type Config struct {
	Tags      []string  `json:"tags" yaml:"tags"`
	Border    Border    `json:"border" yaml:"border"`
	Keybinds  []Keybind `json:"keybinds" yaml:"keybinds"`
	Autostart []string  `json:"autostart" yaml:"autostart"`
}

type Border struct {
	Width   uint32 `json:"width" yaml:"width"`
	Focused uint32 `json:"focused" yaml:"focused"`
	Normal  uint32 `json:"normal" yaml:"normal"`
}

type Keybind struct {
	Key    xproto.Keycode `json:"key" yaml:"key"`
	Mods   []string       `json:"mods" yaml:"mods"`
	Action string         `json:"action" yaml:"action"`
	Arg    string         `json:"arg" yaml:"arg"`
}

// ModMask returns the modifiers as an X modifier mask.
func (k Keybind) ModMask() (uint16, error) {
	var mask uint16
	for _, mod := range k.Mods {
		m, ok := modifiers[mod]
		if !ok {
			return 0, fmt.Errorf("%s: unknown modifier", mod)
		}
		mask |= m
	}
	return mask, nil
}

func Default() Config {
	cfg := defaultConfig
	cfg.Tags = slices.Clone(defaultConfig.Tags)
	cfg.Keybinds = slices.Clone(defaultConfig.Keybinds)
	cfg.Autostart = slices.Clone(defaultConfig.Autostart)
	return cfg
}

func (c Config) Validate() error {
	if len(c.Tags) == 0 {
		return fmt.Errorf("tags: at least one tag is required")
	}
	for i, tag := range c.Tags {
		if slices.Index(c.Tags, tag) != i {
			return fmt.Errorf("tags[%d]: duplicate tag %q", i, tag)
		}
	}

	for i, kb := range c.Keybinds {
		if !slices.Contains(actions, kb.Action) {
			return fmt.Errorf("keybinds[%d].action: unknown action %q", i, kb.Action)
		}
		if _, err := kb.ModMask(); err != nil {
			return fmt.Errorf("keybinds[%d].mods: %w", i, err)
		}
		switch kb.Action {
		case ActionSpawn:
			if kb.Arg == "" {
				return fmt.Errorf("keybinds[%d].arg: command is required", i)
			}
		case ActionTag:
			if !slices.Contains(c.Tags, kb.Arg) {
				return fmt.Errorf("keybinds[%d].arg: unknown tag %q", i, kb.Arg)
			}
		}
	}

	return nil
}
