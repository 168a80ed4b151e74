package constants

// Name and Version appear in the welcome banner and the window title.
const (
	Name    = "quill"
	Version = "0.1.0"
)

// DefaultQuitTimes is how many consecutive quit presses discard unsaved
// changes.
const DefaultQuitTimes = 3

// User-visible notices.
const (
	SavePrompt      = "Save as: "
	SavedNotice     = "File saved successfully."
	SaveErrorNotice = "Error writing file!"
	SaveAborted     = "Save aborted."

	// Formats take the remaining press count and the file name.
	QuitWarningFormat = "WARNING! File has unsaved changes. Press Ctrl-Q %d more times to quit."
	OpenErrorFormat   = "ERR: Could not open file: %s"
)

// NoName stands in for the file name of a buffer that has never been saved.
const NoName = "[No Name]"

// Goodbye is printed after the terminal is restored.
const Goodbye = "Goodbye."
