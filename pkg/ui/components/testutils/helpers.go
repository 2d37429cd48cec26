package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// NewCtrlKeyPressMsg creates a Ctrl+<char> KeyPressMsg
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// TypeString feeds text to update one rune at a time.
func TypeString(text string, update func(tea.KeyPressMsg)) {
	for _, r := range text {
		update(NewTextKeyPressMsg(string(r)))
	}
}

var (
	TestKeyUp     = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown   = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter  = NewKeyPressMsg(tea.KeyEnter)
	TestKeyEsc    = NewKeyPressMsg(tea.KeyEscape)
	TestKeyPgUp   = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown = NewKeyPressMsg(tea.KeyPgDown)

	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlN = NewCtrlKeyPressMsg('n')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
