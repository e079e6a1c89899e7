package content

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFlashLayout(t *testing.T) {
	paths := []string{
		"bitsy/engine/script.lua",
		"bitsy/engine/font.lua",
		"bitsy/engine/transition.lua",
		"bitsy/engine/dialog.lua",
		"bitsy/engine/renderer.lua",
		"bitsy/engine/bitsy.lua",
		"bitsy/font/ascii_small.bitsyfont",
		"boot/boot.lua",
		"boot/boot.bitsy",
	}
	for _, p := range paths {
		if _, err := fs.Stat(FS(), p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
}

func TestEmbeddedStringsMatchFlash(t *testing.T) {
	cases := map[string]string{
		"bitsy/engine/bitsy.lua":           BitsyEngine,
		"bitsy/font/ascii_small.bitsyfont": DefaultFont,
		"boot/boot.lua":                    BootScript,
	}
	for p, want := range cases {
		data, err := fs.ReadFile(FS(), p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != want {
			t.Errorf("%s differs from its embedded constant", p)
		}
	}
}

func TestBundledGames(t *testing.T) {
	entries, err := fs.ReadDir(FS(), "games")
	if err != nil {
		t.Fatalf("read games: %v", err)
	}
	n := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bitsy") {
			n++
		}
	}
	if n < 2 {
		t.Errorf("bundled games = %d, want at least 2", n)
	}
}
