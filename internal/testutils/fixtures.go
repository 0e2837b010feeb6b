package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Search endpoints served by FakeAPI
const (
	ItemEndpoint         = "/api/item/"
	EffectEndpoint       = "/api/effect/"
	LootTemplateEndpoint = "/api/loottemplate/"
	SimulationEndpoint   = "/simulation/"
)

// FakeAPI stands in for the Fallout web application: its search endpoints
// filter fixture records by name__icontains, and the simulation endpoint
// answers with a preset body.
type FakeAPI struct {
	*httptest.Server

	mu             sync.Mutex
	records        map[string][]map[string]any
	simulationBody string
	simulationCode int
	posted         []string
}

// NewFakeAPI starts a fake API seeded with DefaultRecords. It is closed
// when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		records:        DefaultRecords(),
		simulationBody: `""`,
		simulationCode: http.StatusOK,
	}

	mux := http.NewServeMux()
	for endpoint := range api.records {
		mux.HandleFunc("GET "+endpoint, api.search(endpoint))
	}
	mux.HandleFunc("POST "+SimulationEndpoint, api.simulate)

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

// DefaultRecords returns the fixture records of each search endpoint
func DefaultRecords() map[string][]map[string]any {
	return map[string][]map[string]any{
		ItemEndpoint: {
			{"id": 5, "name": "Stimpak", "type": "consumable", "type_display": "Consumable"},
			{"id": 6, "name": "Super Stimpak", "type": "consumable", "type_display": "Consumable"},
			{"id": 12, "name": "Laser Pistol", "type": "weapon", "type_display": "Weapon"},
		},
		EffectEndpoint: {
			{"id": 1, "name": "Rad-X"},
			{"id": 2, "name": "Radiation poisoning"},
		},
		LootTemplateEndpoint: {
			{"id": 3, "name": "Raider stash"},
		},
	}
}

// SetSimulationResponse sets the status and raw JSON body of the
// simulation endpoint
func (a *FakeAPI) SetSimulationResponse(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.simulationCode = status
	a.simulationBody = body
}

// PostedForms returns the urlencoded bodies received by the simulation
// endpoint
func (a *FakeAPI) PostedForms() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.posted...)
}

func (a *FakeAPI) search(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := strings.ToLower(r.URL.Query().Get("name__icontains"))
		display := r.URL.Query().Get("display") == "1"

		results := []map[string]any{}
		for _, rec := range a.records[endpoint] {
			name, _ := rec["name"].(string)
			if !strings.Contains(strings.ToLower(name), term) {
				continue
			}
			out := make(map[string]any, len(rec))
			for k, v := range rec {
				if strings.HasSuffix(k, "_display") && !display {
					continue
				}
				out[k] = v
			}
			results = append(results, out)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   len(results),
			"results": results,
		})
	}
}

func (a *FakeAPI) simulate(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.posted = append(a.posted, string(body))
	status, resp := a.simulationCode, a.simulationBody
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
}
