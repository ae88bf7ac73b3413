package tui

// Color constants for the studywise TUI theme
const (
	// Base Colors
	ColorCardBackground = "#10241F" // Deep green
	ColorBorder         = "#35524A" // Grey-green

	// Text Colors
	ColorPrimaryText   = "#E8F1EE" // Field labels, user input, titles
	ColorSecondaryText = "#A9BDB6" // Muted green-grey
	ColorDisabledText  = "#66776F"
	ColorPlaceholder   = "#A9BDB6"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#0F9D7A" // Clock, active borders
	ColorAccentBright = "#5EEAD4" // Highlights, current field

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)
