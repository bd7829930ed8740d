package messages

import "github.com/ryan-rushton/unilaunch/internal/config"

// LaunchMsg is sent by the home screen when a tool should be launched.
type LaunchMsg struct {
	Tool config.Tool
}

// OpenFolderMsg asks for the folder containing a tool to be opened.
type OpenFolderMsg struct {
	Tool config.Tool
}

// ReloadMsg asks for the config file to be read again.
type ReloadMsg struct{}

// CycleThemeMsg asks for the next theme to be applied and saved.
type CycleThemeMsg struct{}

// OpenConfigMsg asks for the config file to be opened in its default editor.
type OpenConfigMsg struct{}

// LaunchedMsg reports the outcome of a launch.
type LaunchedMsg struct {
	Name string
	Err  error
}

// OpenedMsg reports the outcome of opening a folder or the config file.
type OpenedMsg struct {
	Target string
	Err    error
}

// ConfigLoadedMsg carries a freshly loaded document, or why loading failed.
type ConfigLoadedMsg struct {
	Doc *config.Document
	Err error
}

// ConfigSavedMsg reports a theme save. Doc is what was written.
type ConfigSavedMsg struct {
	Doc *config.Document
	Err error
}
