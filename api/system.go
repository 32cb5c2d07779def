package emucore

// DS pad button bit positions in the uint32 bitmask passed to SetButtons.
const (
	ButtonUp     = 0
	ButtonDown   = 1
	ButtonLeft   = 2
	ButtonRight  = 3
	ButtonA      = 4
	ButtonB      = 5
	ButtonX      = 6
	ButtonY      = 7
	ButtonL      = 8
	ButtonR      = 9
	ButtonStart  = 10
	ButtonSelect = 11
)

// Native DS geometry: two 256x192 panels stacked vertically.
const (
	NativePanelWidth  = 256
	NativePanelHeight = 192
	NativeWidth       = NativePanelWidth
	NativeHeight      = NativePanelHeight * 2
)

// Button describes a pad button with its display name and bit position in
// the input bitmask.
type Button struct {
	Name       string
	ID         int    // Bit position in the uint32 bitmask
	DefaultKey string // Default keyboard key for standalone UI (e.g., "X", "Enter")
	DefaultPad string // Default gamepad button for standalone UI (e.g., "A", "Start")
}

// DefaultButtons is the DS pad with its default keyboard and gamepad bindings.
var DefaultButtons = []Button{
	{Name: "Up", ID: ButtonUp, DefaultKey: "ArrowUp", DefaultPad: "DpadUp"},
	{Name: "Down", ID: ButtonDown, DefaultKey: "ArrowDown", DefaultPad: "DpadDown"},
	{Name: "Left", ID: ButtonLeft, DefaultKey: "ArrowLeft", DefaultPad: "DpadLeft"},
	{Name: "Right", ID: ButtonRight, DefaultKey: "ArrowRight", DefaultPad: "DpadRight"},
	{Name: "A", ID: ButtonA, DefaultKey: "X", DefaultPad: "B"},
	{Name: "B", ID: ButtonB, DefaultKey: "Z", DefaultPad: "A"},
	{Name: "X", ID: ButtonX, DefaultKey: "S", DefaultPad: "Y"},
	{Name: "Y", ID: ButtonY, DefaultKey: "A", DefaultPad: "X"},
	{Name: "L", ID: ButtonL, DefaultKey: "Q", DefaultPad: "L1"},
	{Name: "R", ID: ButtonR, DefaultKey: "W", DefaultPad: "R1"},
	{Name: "Start", ID: ButtonStart, DefaultKey: "Enter", DefaultPad: "Start"},
	{Name: "Select", ID: ButtonSelect, DefaultKey: "Backspace", DefaultPad: "Select"},
}

// SystemInfo describes the emulator core for UI configuration.
type SystemInfo struct {
	Name          string
	ConsoleName   string
	Extensions    []string
	SampleRate    int
	Buttons       []Button
	ScreenFilters []string // Display names indexed by filter number; 0 is "None"
	DataDirName   string
	CoreName      string
	CoreVersion   string
}

// FilterName returns the display name of a screen filter index.
func (si SystemInfo) FilterName(index int) string {
	if index >= 0 && index < len(si.ScreenFilters) {
		return si.ScreenFilters[index]
	}
	if index == 0 {
		return "None"
	}
	return "Unknown"
}

// NextFilter returns the filter index after current, wrapping to 0.
func (si SystemInfo) NextFilter(current int) int {
	if len(si.ScreenFilters) == 0 {
		return 0
	}
	next := current + 1
	if next < 0 || next >= len(si.ScreenFilters) {
		return 0
	}
	return next
}
