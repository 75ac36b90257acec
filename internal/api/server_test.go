package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/telemetry"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Simulation) {
	t.Helper()
	m, err := island.FromString("OOO\nOJO\nOOO")
	if err != nil {
		t.Fatal(err)
	}
	sim := engine.New(m, 31)
	err = sim.AddPopulation([]engine.PopulationGroup{
		{Row: 1, Col: 1, Animals: []engine.AnimalDescriptor{
			{Species: "Herbivore", Age: 5, Weight: 20},
			{Species: "Herbivore", Age: 5, Weight: 20},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	col := telemetry.NewCollector(sim)
	sim.OnYearEnd = col.Observe

	srv := httptest.NewServer((&Server{Sim: sim, Col: col}).Routes())
	t.Cleanup(srv.Close)
	return srv, sim
}

func getJSON(t *testing.T, url string, into any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatal(err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var status struct {
		Year       int `json:"year"`
		Animals    int `json:"animals"`
		Herbivores int `json:"herbivores"`
		Carnivores int `json:"carnivores"`
	}
	getJSON(t, srv.URL+"/api/v1/status", &status)

	if status.Year != 0 || status.Herbivores != 2 || status.Carnivores != 0 || status.Animals != 2 {
		t.Errorf("status = %+v, want year 0 with 2 herbivores", status)
	}
}

func TestMapEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var m struct {
		Rows    int      `json:"rows"`
		Cols    int      `json:"cols"`
		Terrain []string `json:"terrain"`
	}
	getJSON(t, srv.URL+"/api/v1/map", &m)

	if m.Rows != 3 || m.Cols != 3 {
		t.Errorf("map = %dx%d, want 3x3", m.Rows, m.Cols)
	}
	want := []string{"OOO", "OJO", "OOO"}
	for i := range want {
		if m.Terrain[i] != want[i] {
			t.Errorf("terrain row %d = %q, want %q", i, m.Terrain[i], want[i])
		}
	}
}

func TestDistributionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var dist []engine.CellCount
	getJSON(t, srv.URL+"/api/v1/distribution", &dist)

	if len(dist) != 9 {
		t.Fatalf("cells = %d, want 9", len(dist))
	}
	center := dist[4]
	if center.Row != 1 || center.Col != 1 || center.Herbivores != 2 {
		t.Errorf("center cell = %+v, want 2 herbivores at (1,1)", center)
	}
}

func TestSimulateEndpoint(t *testing.T) {
	srv, sim := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/simulate", "application/json", strings.NewReader(`{"years": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST simulate = %d, want 200", resp.StatusCode)
	}

	var result struct {
		Year int `json:"year"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Year != 2 || sim.Year() != 2 {
		t.Errorf("year = %d (response) / %d (simulation), want 2", result.Year, sim.Year())
	}

	var history []telemetry.YearStats
	getJSON(t, srv.URL+"/api/v1/history", &history)
	if len(history) != 2 {
		t.Errorf("history rows = %d, want 2", len(history))
	}
}

func TestSimulateRejections(t *testing.T) {
	srv, sim := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/simulate")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET simulate = %d, want 405", resp.StatusCode)
	}

	cases := []string{`{"years": 0}`, `{"years": 20000}`, `not json`}
	for _, body := range cases {
		resp, err := http.Post(srv.URL+"/api/v1/simulate", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST %q = %d, want 400", body, resp.StatusCode)
		}
	}

	if sim.Year() != 0 {
		t.Errorf("rejected requests must not advance the year: %d", sim.Year())
	}
}

func TestHistoryEmptyBeforeFirstYear(t *testing.T) {
	srv, _ := newTestServer(t)

	var history []telemetry.YearStats
	getJSON(t, srv.URL+"/api/v1/history", &history)
	if len(history) != 0 {
		t.Errorf("history rows = %d, want none before the first year", len(history))
	}
}

func TestSimulateRateLimited(t *testing.T) {
	srv, sim := newTestServer(t)

	// Exhaust the window with requests that never advance the simulation.
	for i := 0; i < simulateRateLimit; i++ {
		resp, err := http.Post(srv.URL+"/api/v1/simulate", "application/json", strings.NewReader(`{"years": 0}`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("request %d = %d, want 400", i, resp.StatusCode)
		}
	}

	resp, err := http.Post(srv.URL+"/api/v1/simulate", "application/json", strings.NewReader(`{"years": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("over-limit request = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
	if sim.Year() != 0 {
		t.Errorf("throttled request must not advance the year: %d", sim.Year())
	}
}
