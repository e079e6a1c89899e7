package script

// API is the capability table the host binds into the script engine, one
// method per native primitive. *device.Device implements it.
type API interface {
	Log(message string)
	Button(code int) bool
	SetGraphicsMode(mode int)
	SetColor(index, r, g, b int) error
	ResetColors()
	DrawBegin(handle int)
	DrawEnd()
	DrawPixel(index, x, y int) error
	DrawTile(handle, x, y int)
	DrawTextbox(x, y int)
	Clear(index int) error
	AddTile() (int, error)
	ResetTiles()
	SetTextboxSize(w, h int) error
}

// Globals shared between the host and the scripts. The engine scripts rely
// on these exact names.
const (
	GameFiles    = "__bitsybox_game_files__"
	GameData     = "__bitsybox_game_data__"
	DefaultFont  = "__bitsybox_default_font__"
	OnLoad       = "__bitsybox_on_load__"
	OnUpdate     = "__bitsybox_on_update__"
	OnQuit       = "__bitsybox_on_quit__"
	BootFinished = "__bitsybox_is_boot_finished__"
	GameOver     = "__bitsybox_is_game_over__"
	SelectedGame = "__bitsybox_selected_game__"
	ResetCurGame = "reset_cur_game"
)
