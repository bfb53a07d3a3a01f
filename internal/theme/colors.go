package theme

import "charm.land/lipgloss/v2"

var (
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorAccent = lipgloss.Color("#00F19F")
	ColorOK     = lipgloss.Color("#16EC06")
	ColorWarn   = lipgloss.Color("#FFDE00")
	ColorError  = lipgloss.Color("#FF0026")
)
