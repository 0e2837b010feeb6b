package panel

// Where an initial panel came from
const (
	SourceStored = "stored"
	SourceFirst  = "first"
	SourceNone   = "none"
)

// ActivatePanelInput defines the request for remembering the active panel
type ActivatePanelInput struct {
	Session string
	Panel   string
}

// ActivatePanelOutput defines the response for remembering the active panel
type ActivatePanelOutput struct {
	Panel string
}

// InitialPanelInput defines the request for choosing the panel shown on load
type InitialPanelInput struct {
	Session string
	// Panels rendered by the page, in document order
	Panels []string
}

// InitialPanelOutput defines the panel to show; Panel is empty when the page
// has no panels
type InitialPanelOutput struct {
	Panel  string
	Source string
}
