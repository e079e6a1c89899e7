// Package registry catalogs the games found on the flash filesystem.
// The console's boot menu and the CLI both list games through Scan, so a
// game appears the moment its payload is copied into the games directory.
package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// GamesDir is the flash directory holding game payloads.
const GamesDir = "games"

// Ext is the extension of game payload files.
const Ext = "bitsy"

// GameInfo contains metadata about a game on the flash.
type GameInfo struct {
	Name  string // file name, e.g. "garden.bitsy"
	Path  string // path relative to the flash root
	Title string // first non-empty line of the payload
}

// Scan lists the regular entries of dir whose name ends with "."+ext,
// sorted by name. A missing directory yields an empty list.
func Scan(fsys fs.FS, dir, ext string) ([]GameInfo, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: scan %s: %w", dir, err)
	}

	suffix := "." + ext
	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		p := path.Join(dir, e.Name())
		result = append(result, GameInfo{
			Name:  e.Name(),
			Path:  p,
			Title: readTitle(fsys, p),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Names returns the file names of games, in order.
func Names(games []GameInfo) []string {
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	return names
}

// Find returns the game whose Name or Name without extension equals name.
func Find(games []GameInfo, name string) (GameInfo, bool) {
	for _, g := range games {
		if g.Name == name || strings.TrimSuffix(g.Name, path.Ext(g.Name)) == name {
			return g, true
		}
	}
	return GameInfo{}, false
}

func readTitle(fsys fs.FS, p string) string {
	f, err := fsys.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
