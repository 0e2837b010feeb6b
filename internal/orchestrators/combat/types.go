package combat

import (
	"net/http"

	"github.com/debnet/fallout/internal/formdata"
	"github.com/debnet/fallout/internal/simulation"
)

// SimulateInput defines the request for a combat simulation
type SimulateInput struct {
	// Fields of the simulation form, in document order
	Fields []formdata.Field
	// Header carries the browser headers to forward
	Header http.Header
}

// SimulateOutput defines the response for a combat simulation
type SimulateOutput struct {
	RequestID string
	// Form is the collected form as posted
	Form *formdata.Map
	// Result is the classified simulation response
	Result simulation.Result
	// Alert is the text to show the player; empty when ShowAlert is false
	Alert     string
	ShowAlert bool
}
