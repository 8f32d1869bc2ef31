package app

import (
	"github.com/seracht/gpterm/app/apikey"
	"github.com/seracht/gpterm/app/chat"
	"github.com/seracht/gpterm/app/navigation"
	"github.com/seracht/gpterm/ui"
)

// View renders the whole frame: tab strip on top, active screen below.
func View(s State, md *ui.Markdown) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	tabs := navigation.View(s.Nav, s.Width)
	screenHeight := s.Height - 1

	var screen string
	switch s.Nav.Current {
	case navigation.ScreenConfig:
		screen = apikey.View(s.APIKey, s.Chat.Ready(), s.Width, screenHeight)
	default:
		screen = chat.View(s.Chat, md, s.Width, screenHeight)
	}
	return ui.JoinVertical(tabs, screen)
}
