package fbdev

import (
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// displayServers own the framebuffer while they run.
var displayServers = map[string]struct{}{
	`Xorg`:         {},
	`X`:            {},
	`Xwayland`:     {},
	`weston`:       {},
	`sway`:         {},
	`kwin_wayland`: {},
	`gnome-shell`:  {},
	`mutter`:       {},
	`Hyprland`:     {},
	`labwc`:        {},
	`cage`:         {},
}

var processes = ps.Processes

func displayServerRunning() (string, bool) {
	procs, err := processes()
	if err != nil {
		return ``, false
	}
	for _, p := range procs {
		exe := p.Executable()
		if _, ok := displayServers[exe]; ok {
			return exe, true
		}
		// Xorg shows up as Xorg.bin or Xorg.wrap on some distributions.
		if strings.HasPrefix(exe, `Xorg.`) {
			return exe, true
		}
	}
	return ``, false
}
