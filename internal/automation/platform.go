package automation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// systemAliases maps spoken sub-commands to canonical system actions.
var systemAliases = map[string]string{
	"mute":               "mute",
	"unmute":             "unmute",
	"volume up":          "volume up",
	"increase volume":    "volume up",
	"volume down":        "volume down",
	"decrease volume":    "volume down",
	"pause":              "play pause",
	"play":               "play pause",
	"resume":             "play pause",
	"play pause":         "play pause",
	"next":               "next",
	"next track":         "next",
	"previous":           "previous",
	"previous track":     "previous",
	"minimize all":       "minimize all",
	"close window":       "close window",
	"close tab":          "close tab",
	"shutdown":           "shutdown",
	"shut down":          "shutdown",
	"shut down computer": "shutdown",
}

func normalizeSystem(sub string) string {
	s := strings.ToLower(strings.Join(strings.Fields(sub), " "))
	s = strings.TrimPrefix(s, "system ")
	s = strings.ReplaceAll(s, "/", " ")
	if canon, ok := systemAliases[s]; ok {
		return canon
	}
	return s
}

func powershellKey(code int) []string {
	return []string{"powershell", "-NoProfile", "-Command",
		"(New-Object -ComObject WScript.Shell).SendKeys([char]" + strconv.Itoa(code) + ")"}
}

func powershellSendKeys(keys string) []string {
	return []string{"powershell", "-NoProfile", "-Command",
		"(New-Object -ComObject WScript.Shell).SendKeys('" + keys + "')"}
}

func osascript(script string) []string {
	return []string{"osascript", "-e", script}
}

// systemCommands returns the command lines for each canonical system
// action on goos. Some actions need more than one command.
func systemCommands(goos string) map[string][][]string {
	switch goos {
	case "darwin":
		return map[string][][]string{
			"mute":         {osascript("set volume output muted true")},
			"unmute":       {osascript("set volume output muted false")},
			"volume up":    {osascript("set volume output volume ((output volume of (get volume settings)) + 10)")},
			"volume down":  {osascript("set volume output volume ((output volume of (get volume settings)) - 10)")},
			"play pause":   {osascript(`tell application "Music" to playpause`)},
			"next":         {osascript(`tell application "Music" to next track`)},
			"previous":     {osascript(`tell application "Music" to previous track`)},
			"minimize all": {osascript(`tell application "System Events" to keystroke "m" using {command down, option down}`)},
			"close window": {osascript(`tell application "System Events" to keystroke "w" using {command down, shift down}`)},
			"close tab":    {osascript(`tell application "System Events" to keystroke "w" using command down`)},
			"shutdown":     {{"shutdown", "-h", "+1"}},
		}
	case "windows":
		return map[string][][]string{
			"mute":         {powershellKey(173)},
			"unmute":       {powershellKey(173)},
			"volume up":    {powershellKey(175)},
			"volume down":  {powershellKey(174)},
			"next":         {powershellKey(176)},
			"previous":     {powershellKey(177)},
			"play pause":   {powershellKey(179)},
			"minimize all": {{"powershell", "-NoProfile", "-Command", "(New-Object -ComObject Shell.Application).MinimizeAll()"}},
			"close window": {powershellSendKeys("%{F4}")},
			"close tab":    {powershellSendKeys("^w")},
			"shutdown":     {{"shutdown", "/s", "/t", "60"}},
		}
	default:
		return map[string][][]string{
			"mute":         {{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "1"}},
			"unmute":       {{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "0"}},
			"volume up":    {{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "+10%"}},
			"volume down":  {{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "-10%"}},
			"play pause":   {{"playerctl", "play-pause"}},
			"next":         {{"playerctl", "next"}},
			"previous":     {{"playerctl", "previous"}},
			"minimize all": {{"xdotool", "key", "super+d"}},
			"close window": {{"xdotool", "key", "alt+F4"}},
			"close tab":    {{"xdotool", "key", "ctrl+w"}},
			"shutdown":     {{"shutdown", "-h", "+1"}},
		}
	}
}

func browserCommand(goos, u string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{u}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", u}
	default:
		return "xdg-open", []string{u}
	}
}

func editorCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{"-t", path}
	case "windows":
		return "notepad.exe", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// closeCommand matches app literally: pkill gets an escaped pattern and
// taskkill refuses wildcard image names.
func closeCommand(goos, app string) (string, []string, error) {
	if goos == "windows" {
		if strings.ContainsAny(app, "*?") {
			return "", nil, fmt.Errorf("invalid application name %q", app)
		}
		image := app
		if !strings.HasSuffix(strings.ToLower(image), ".exe") {
			image += ".exe"
		}
		return "taskkill", []string{"/IM", image, "/F"}, nil
	}
	return "pkill", []string{"-i", "-x", regexp.QuoteMeta(app)}, nil
}

// cmdMetachars are re-parsed by cmd.exe even inside a start argument.
const cmdMetachars = "&|<>^%\"()!"

// windowsStartArgs builds the cmd /c start invocation for app, rejecting
// names cmd.exe would split into further commands.
func windowsStartArgs(app string) ([]string, error) {
	if strings.ContainsAny(app, cmdMetachars) {
		return nil, fmt.Errorf("invalid application name %q", app)
	}
	return []string{"/c", "start", "", app}, nil
}

// screenshotCommands lists capture tools to try in order.
func screenshotCommands(goos, path string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"screencapture", "-x", path}}
	case "windows":
		script := "Add-Type -AssemblyName System.Windows.Forms,System.Drawing;" +
			"$b=[System.Windows.Forms.Screen]::PrimaryScreen.Bounds;" +
			"$i=New-Object System.Drawing.Bitmap $b.Width,$b.Height;" +
			"$g=[System.Drawing.Graphics]::FromImage($i);" +
			"$g.CopyFromScreen($b.Location,[System.Drawing.Point]::Empty,$b.Size);" +
			"$i.Save('" + path + "')"
		return [][]string{{"powershell", "-NoProfile", "-Command", script}}
	default:
		return [][]string{
			{"gnome-screenshot", "-f", path},
			{"scrot", path},
			{"import", "-window", "root", path},
		}
	}
}
