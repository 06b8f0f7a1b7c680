package ui

import (
	"fmt"
	"strings"

	"github.com/glebovdev/atradio/internal/config"
	"github.com/mattn/go-runewidth"
)

const (
	ellipsis = "..."
	resetTag = "[-:-:-]"
)

func nowPlayingText(v View) string {
	if v.PlayingIndex < 0 || v.PlayingIndex >= len(v.Stations) {
		return "Ready to play"
	}
	return fmt.Sprintf("Now playing: %s, volume %d of %d",
		v.Stations[v.PlayingIndex].Name, v.Volume, config.MaxVolume)
}

func selectionText(v View) string {
	if len(v.Stations) == 0 {
		return "No station selected"
	}
	return fmt.Sprintf("Selected: %s [%d/%d]",
		v.Stations[v.CurrentRow].Name, v.CurrentRow+1, len(v.Stations))
}

// fitAfter right-truncates text so it fits in the columns left after prefix
// and a two-space gap. It returns "" when there is no room at all.
func fitAfter(text, prefix string, width int) string {
	room := width - runewidth.StringWidth(prefix) - 2
	if room <= runewidth.StringWidth(ellipsis) {
		return ""
	}
	return runewidth.Truncate(text, room, ellipsis)
}

const emptyListHint = "List is empty, press Ins to add a station or F5 to load a list"

func headerHint(v View) string {
	if v.MoveMode && v.MovingIndex >= 0 && v.MovingIndex < len(v.Stations) {
		return fmt.Sprintf("Moving %s", v.Stations[v.MovingIndex].Name)
	}
	return "Enter play  Esc stop"
}

// helpText builds the legend; keyTag is the style tag opening each hotkey.
func helpText(moveMode bool, keyTag string) string {
	key := func(k, action string) string {
		return fmt.Sprintf("%s%s%s %s", keyTag, k, resetTag, action)
	}

	if moveMode {
		return joinKeys([]string{
			key("↑/↓", "move"),
			key("Enter", "confirm"),
			key("Esc", "cancel"),
		})
	}

	return joinKeys([]string{
		key("Ins", "add"),
		key("Del", "delete"),
		key("F2", "save"),
		key("F3", "move"),
		key("F4", "edit"),
		key("F5", "load"),
		key("+/-", "vol"),
		key("c", "copy"),
		key("q", "quit"),
	})
}

func joinKeys(parts []string) string {
	return strings.Join(parts, "  ")
}
