package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "Q"}, []string{}, "Close zoom view, or quit"},
	{"help", []string{"Shift+Slash"}, []string{}, "Show/hide help"},
	{"info", []string{"I"}, []string{}, "Show/hide image info"},
	{"next", []string{"ArrowRight", "Space", "N"}, []string{"WheelDown", "Forward"}, "Next image"},
	{"previous", []string{"ArrowLeft", "Backspace", "P"}, []string{"WheelUp", "Back"}, "Previous image"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last image"},
	{"favorite", []string{"F"}, []string{"RightClick"}, "Toggle favorite"},
	{"zoom", []string{"Z", "Enter"}, []string{"MiddleClick"}, "Open/close zoom view"},
	{"fullscreen", []string{"F11", "Alt+Enter"}, []string{}, "Toggle fullscreen"},
}

// ActionExecutor is the single place where action names turn into calls on InputActions.
// Both the keyboard and mouse binding managers go through it.
type ActionExecutor struct{}

func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		if inputState.IsZoomed() {
			inputActions.CloseZoom()
		} else {
			inputActions.Exit()
		}
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToFirst()
	case "jump_last":
		inputActions.JumpToLast()
	case "favorite":
		inputActions.ToggleFavorite()
	case "zoom":
		if inputState.IsZoomed() {
			inputActions.CloseZoom()
		} else {
			inputActions.RequestZoom()
		}
	case "fullscreen":
		inputActions.ToggleFullscreen()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
