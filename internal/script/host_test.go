package script

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/content"
	"github.com/vovakirdan/bitsybox/internal/core"
	"github.com/vovakirdan/bitsybox/internal/device"
)

type fakeAPI struct {
	logs     []string
	buttons  map[int]bool
	colors   map[int][3]int
	pixels   [][3]int
	tileErr  error
	boxErr   error
	nextTile int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{buttons: map[int]bool{}, colors: map[int][3]int{}, nextTile: device.FirstTile}
}

func (f *fakeAPI) Log(message string)     { f.logs = append(f.logs, message) }
func (f *fakeAPI) Button(code int) bool   { return f.buttons[code] }
func (f *fakeAPI) SetGraphicsMode(int)    {}
func (f *fakeAPI) ResetColors()           { f.colors = map[int][3]int{} }
func (f *fakeAPI) DrawBegin(int)          {}
func (f *fakeAPI) DrawEnd()               {}
func (f *fakeAPI) DrawTile(int, int, int) {}
func (f *fakeAPI) DrawTextbox(int, int)   {}
func (f *fakeAPI) Clear(int) error        { return nil }
func (f *fakeAPI) ResetTiles()            { f.nextTile = device.FirstTile }

func (f *fakeAPI) SetColor(index, r, g, b int) error {
	f.colors[index] = [3]int{r, g, b}
	return nil
}

func (f *fakeAPI) DrawPixel(index, x, y int) error {
	f.pixels = append(f.pixels, [3]int{index, x, y})
	return nil
}

func (f *fakeAPI) AddTile() (int, error) {
	if f.tileErr != nil {
		return 0, f.tileErr
	}
	f.nextTile++
	return f.nextTile - 1, nil
}

func (f *fakeAPI) SetTextboxSize(w, h int) error {
	return f.boxErr
}

func newTestHost(t *testing.T, api API) *Host {
	t.Helper()
	h, err := NewHost(context.Background(), api, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewHost() failed: %v", err)
	}
	t.Cleanup(h.Close)
	return h
}

func TestBindingsReachAPI(t *testing.T) {
	api := newFakeAPI()
	api.buttons[4] = true
	h := newTestHost(t, api)

	err := h.Eval("test", `
		bitsyLog("hello")
		bitsySetColor(3, 10, 20, 30)
		bitsyDrawPixel(3, 5, 6)
		confirm = bitsyGetButton(4)
		cancel = bitsyGetButton(5)
		tile = bitsyAddTile()
	`)
	if err != nil {
		t.Fatalf("Eval() failed: %v", err)
	}

	if len(api.logs) != 1 || api.logs[0] != "hello" {
		t.Errorf("logs = %v, want [hello]", api.logs)
	}
	if api.colors[3] != [3]int{10, 20, 30} {
		t.Errorf("color 3 = %v", api.colors[3])
	}
	if len(api.pixels) != 1 || api.pixels[0] != [3]int{3, 5, 6} {
		t.Errorf("pixels = %v", api.pixels)
	}
	if !h.Truthy("confirm") || h.Truthy("cancel") {
		t.Errorf("button globals: confirm=%v cancel=%v", h.Truthy("confirm"), h.Truthy("cancel"))
	}
	if got := h.String("tile"); got != "2" {
		t.Errorf("tile = %q, want 2", got)
	}
}

func TestSandboxHasNoHostAccess(t *testing.T) {
	h := newTestHost(t, newFakeAPI())
	err := h.Eval("sandbox", `assert(io == nil and os == nil and dofile == nil and loadfile == nil and require == nil)`)
	if err != nil {
		t.Fatalf("sandbox exposes host libraries: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.lua": {Data: []byte("x = = 1")},
		"throws.lua": {Data: []byte(`error("boom")`)},
	}

	tests := []struct {
		name string
		path string
		kind LoadKind
	}{
		{"missing", "nope.lua", KindNotFound},
		{"syntax", "broken.lua", KindSyntax},
		{"runtime", "throws.lua", KindRuntime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, newFakeAPI())
			err := h.LoadScript(fsys, tt.path)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("LoadScript() error = %v, want *LoadError", err)
			}
			if le.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", le.Kind, tt.kind)
			}
			if le.Asset != tt.path {
				t.Errorf("Asset = %q, want %q", le.Asset, tt.path)
			}
		})
	}
}

func TestLoadFileStagesRawText(t *testing.T) {
	fsys := fstest.MapFS{"games/a.bitsy": {Data: []byte("Title\nnot = lua")}}
	h := newTestHost(t, newFakeAPI())
	if err := h.LoadFile(fsys, "games/a.bitsy", GameData); err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if got := h.String(GameData); got != "Title\nnot = lua" {
		t.Errorf("GameData = %q", got)
	}
}

func TestExhaustionSurvivesTheScript(t *testing.T) {
	api := newFakeAPI()
	api.tileErr = &device.ExhaustionError{Resource: "tile pool", Limit: 4}
	h := newTestHost(t, api)

	fsys := fstest.MapFS{"greedy.lua": {Data: []byte("for i = 1, 10 do bitsyAddTile() end")}}
	err := h.LoadScript(fsys, "greedy.lua")
	if !errors.Is(err, device.ErrResourceExhausted) {
		t.Fatalf("LoadScript() error = %v, want resource exhausted", err)
	}
	if !strings.Contains(err.Error(), "tile pool") {
		t.Errorf("LoadScript() error = %q, want the exhaustion message", err)
	}

	if err := h.Eval("register", `bitsyOnUpdate(function() bitsySetTextboxSize(-1, 4) end)`); err != nil {
		t.Fatal(err)
	}
	api.boxErr = &device.ExhaustionError{Resource: "textbox", Limit: 16}
	err = h.Call(OnUpdate)
	var ce *CallbackError
	if !errors.As(err, &ce) || ce.Callback != OnUpdate {
		t.Fatalf("Call() error = %v, want *CallbackError for %s", err, OnUpdate)
	}
	if !errors.Is(err, device.ErrResourceExhausted) {
		t.Errorf("Call() error = %v, want resource exhausted", err)
	}
}

func TestCaughtFaultDoesNotLeak(t *testing.T) {
	api := newFakeAPI()
	api.boxErr = &device.ExhaustionError{Resource: "textbox", Limit: 16}
	h := newTestHost(t, api)

	fsys := fstest.MapFS{"careless.lua": {Data: []byte(`
local ok, e = pcall(bitsySetTextboxSize, -1, -1)
caught = tostring(e)
error("unrelated script bug")
`)}}
	err := h.LoadScript(fsys, "careless.lua")
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != KindRuntime {
		t.Fatalf("LoadScript() error = %v, want runtime *LoadError", err)
	}
	if errors.Is(err, device.ErrResourceExhausted) {
		t.Errorf("LoadScript() error = %v, should not carry the caught fault", err)
	}
	if !strings.Contains(h.String("caught"), "textbox") {
		t.Errorf("tostring(fault) = %q", h.String("caught"))
	}

	rethrow := fstest.MapFS{"rethrow.lua": {Data: []byte(`
local ok, e = pcall(bitsySetTextboxSize, -1, -1)
error(e)
`)}}
	err = h.LoadScript(rethrow, "rethrow.lua")
	if !errors.Is(err, device.ErrResourceExhausted) {
		t.Errorf("LoadScript() error = %v, want the rethrown fault", err)
	}
}

func TestCallbackRegistrationOverwrites(t *testing.T) {
	h := newTestHost(t, newFakeAPI())
	err := h.Eval("register", `
		bitsyOnUpdate(function() which = "first" end)
		bitsyOnUpdate(function() which = "second" end)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if !h.HasCallback(OnUpdate) {
		t.Fatal("on_update not registered")
	}
	if err := h.Call(OnUpdate); err != nil {
		t.Fatal(err)
	}
	if got := h.String("which"); got != "second" {
		t.Errorf("which = %q, want second", got)
	}
}

func TestCallMissingCallback(t *testing.T) {
	h := newTestHost(t, newFakeAPI())
	if h.HasCallback(OnQuit) {
		t.Fatal("fresh host has on_quit")
	}
	if err := h.Call(OnQuit); !errors.Is(err, ErrNoCallback) {
		t.Errorf("Call() error = %v, want ErrNoCallback", err)
	}
}

func TestCallPassesArguments(t *testing.T) {
	h := newTestHost(t, newFakeAPI())
	h.SetStringList(GameFiles, []string{"a.bitsy", "b.bitsy"})
	h.SetGlobal(GameData, "payload")
	err := h.Eval("register", `bitsyOnLoad(function(data, font) got = data .. ":" .. font .. ":" .. #__bitsybox_game_files__ end)`)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Call(OnLoad, h.Global(GameData), "font"); err != nil {
		t.Fatal(err)
	}
	if got := h.String("got"); got != "payload:font:2" {
		t.Errorf("got = %q", got)
	}
	if h.Len(GameFiles) != 2 {
		t.Errorf("Len(GameFiles) = %d, want 2", h.Len(GameFiles))
	}
}

func TestCancelInterruptsRunawayScript(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	h, err := NewHost(ctx, newFakeAPI(), log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := h.Eval("spin", "while true do end"); err == nil {
		t.Fatal("runaway script returned without error")
	}

	h.Detach()
	if err := h.Eval("after", "done = true"); err != nil {
		t.Errorf("Eval() after Detach failed: %v", err)
	}
}

func TestSourcesAgree(t *testing.T) {
	sources := map[string]Source{
		"flash":    FSSource{FS: content.FS()},
		"embedded": EmbeddedSource{},
	}
	fonts := map[string]string{}
	for name, src := range sources {
		h := newTestHost(t, newFakeAPI())
		for _, a := range EngineScripts {
			if err := src.LoadScript(h, a); err != nil {
				t.Fatalf("%s: LoadScript(%s) failed: %v", name, a, err)
			}
		}
		if err := src.LoadFile(h, AssetDefaultFont, DefaultFont); err != nil {
			t.Fatalf("%s: LoadFile() failed: %v", name, err)
		}
		fonts[name] = h.String(DefaultFont)
	}
	if fonts["flash"] != fonts["embedded"] {
		t.Error("flash and embedded fonts differ")
	}
	if !strings.HasPrefix(fonts["embedded"], "FONT ") {
		t.Errorf("default font = %.20q", fonts["embedded"])
	}
}

func TestFSSourceMissingAsset(t *testing.T) {
	h := newTestHost(t, newFakeAPI())
	err := FSSource{FS: fstest.MapFS{}}.LoadScript(h, AssetBootScript)
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != KindNotFound || le.Asset != "boot/boot.lua" {
		t.Errorf("LoadScript() error = %v", err)
	}
}

func TestEngineRunsBundledGame(t *testing.T) {
	d := device.New(core.DefaultConfig(), core.NewKeys(), nil, log.New(io.Discard))
	h := newTestHost(t, d)
	src := EmbeddedSource{}
	for _, a := range EngineScripts {
		if err := src.LoadScript(h, a); err != nil {
			t.Fatalf("LoadScript(%s) failed: %v", a, err)
		}
	}
	if err := src.LoadFile(h, AssetDefaultFont, DefaultFont); err != nil {
		t.Fatal(err)
	}
	if err := h.LoadFile(content.FS(), "games/garden.bitsy", GameData); err != nil {
		t.Fatal(err)
	}
	if err := h.Call(OnLoad, h.Global(GameData), h.Global(DefaultFont)); err != nil {
		t.Fatalf("on_load failed: %v", err)
	}

	bg, _ := d.Palette().At(0)
	for i := 0; i < 3; i++ {
		d.BeginFrame()
		if err := h.Call(OnUpdate); err != nil {
			t.Fatalf("on_update tick %d failed: %v", i, err)
		}
	}
	screen := d.Pool().Screen()
	drawn := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) != bg {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("engine drew nothing")
	}
	if d.Pool().TileCount() == 0 {
		t.Error("renderer allocated no tiles")
	}
	if err := h.Call(OnQuit); err != nil {
		t.Errorf("on_quit failed: %v", err)
	}
}

type panickingAPI struct {
	*fakeAPI
}

func (panickingAPI) Log(string) { panic("log sink gone") }

func TestHostPanicIsFatal(t *testing.T) {
	h := newTestHost(t, panickingAPI{newFakeAPI()})
	err := h.Eval("log", `bitsyLog("x")`)
	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("Eval() error = %v, want *FatalError", err)
	}
	if fe.Op != "log" {
		t.Errorf("Op = %q, want log", fe.Op)
	}
}
