package registry

import (
	"testing"
	"testing/fstest"
)

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"games/b.bitsy":     {Data: []byte("\n\n  Second Game \nPAL 0,0,0")},
		"games/a.bitsy":     {Data: []byte("First Game\n")},
		"games/notes.txt":   {Data: []byte("ignored")},
		"games/upper.BITSY": {Data: []byte("ignored, suffix is case-sensitive")},
		"games/dir.bitsy/x": {Data: []byte("directories are skipped")},
		"games/empty.bitsy": {Data: []byte("")},
		"elsewhere/c.bitsy": {Data: []byte("not in games")},
	}

	games, err := Scan(fsys, GamesDir, Ext)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	want := []GameInfo{
		{Name: "a.bitsy", Path: "games/a.bitsy", Title: "First Game"},
		{Name: "b.bitsy", Path: "games/b.bitsy", Title: "Second Game"},
		{Name: "empty.bitsy", Path: "games/empty.bitsy", Title: ""},
	}
	if len(games) != len(want) {
		t.Fatalf("Scan() = %+v, want %d games", games, len(want))
	}
	for i := range want {
		if games[i] != want[i] {
			t.Errorf("games[%d] = %+v, want %+v", i, games[i], want[i])
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	games, err := Scan(fstest.MapFS{}, GamesDir, Ext)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Scan() = %v, want empty", games)
	}
}

func TestFindAndNames(t *testing.T) {
	games := []GameInfo{{Name: "garden.bitsy"}, {Name: "lighthouse.bitsy"}}

	if got := Names(games); len(got) != 2 || got[1] != "lighthouse.bitsy" {
		t.Errorf("Names() = %v", got)
	}
	if g, ok := Find(games, "garden"); !ok || g.Name != "garden.bitsy" {
		t.Errorf("Find(garden) = %+v, %v", g, ok)
	}
	if g, ok := Find(games, "lighthouse.bitsy"); !ok || g.Name != "lighthouse.bitsy" {
		t.Errorf("Find(lighthouse.bitsy) = %+v, %v", g, ok)
	}
	if _, ok := Find(games, "missing"); ok {
		t.Error("Find(missing) succeeded")
	}
}
