package game

import "fmt"

// Command is a discrete input event dispatched by the window layer.
type Command int

const (
	CmdForwardPress Command = iota
	CmdForwardRelease
	CmdBackwardPress
	CmdBackwardRelease
	CmdRotateLeftPress
	CmdRotateLeftRelease
	CmdRotateRightPress
	CmdRotateRightRelease
	CmdWidenFOV
	CmdNarrowFOV
	CmdToggleMap
	CmdToggleFisheye
	CmdToggleTextures
	CmdRegenerateMaze
	CmdQuit
)

var commandNames = map[Command]string{
	CmdForwardPress:       "forward-press",
	CmdForwardRelease:     "forward-release",
	CmdBackwardPress:      "backward-press",
	CmdBackwardRelease:    "backward-release",
	CmdRotateLeftPress:    "rotate-left-press",
	CmdRotateLeftRelease:  "rotate-left-release",
	CmdRotateRightPress:   "rotate-right-press",
	CmdRotateRightRelease: "rotate-right-release",
	CmdWidenFOV:           "widen-fov",
	CmdNarrowFOV:          "narrow-fov",
	CmdToggleMap:          "toggle-map",
	CmdToggleFisheye:      "toggle-fisheye",
	CmdToggleTextures:     "toggle-textures",
	CmdRegenerateMaze:     "regenerate-maze",
	CmdQuit:               "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}
