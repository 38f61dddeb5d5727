// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/voties/auth"
	"github.com/danielhkuo/voties/models"
)

const testSalt = "middleware-salt"

// adminStack mirrors how main wires operator routes: CORS outside, then
// logging, then the admin check
func adminStack(world string, called *int) http.Handler {
	inner := func(w http.ResponseWriter, r *http.Request) {
		*called++
		JSONResponse(w, http.StatusOK, models.SetSpeedResponse{Speed: 2})
	}
	return CORS(WithLogging(RequireAdmin(world, testSalt, inner)))
}

func TestAdminPreflight(t *testing.T) {
	called := 0
	h := adminStack("meadow", &called)

	req := httptest.NewRequest("OPTIONS", "/sim/speed", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", AdminKeyHeader+", Content-Type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	// The browser sends no key on preflight, so it must not reach the admin check
	if w.Code != http.StatusOK {
		t.Fatalf("Expected preflight 200, got %d: %s", w.Code, w.Body.String())
	}
	if called != 0 {
		t.Errorf("Preflight reached the handler %d times", called)
	}
	allowed := w.Header().Get("Access-Control-Allow-Headers")
	for _, want := range []string{AdminKeyHeader, "Content-Type"} {
		if !strings.Contains(allowed, want) {
			t.Errorf("Allowed headers %q missing %s", allowed, want)
		}
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("Expected POST in allowed methods")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected the origin echoed, got %q", got)
	}
}

func TestAdminKeyIsPerWorld(t *testing.T) {
	meadowKey := auth.GenerateAdminKey("meadow", testSalt)
	tundraKey := auth.GenerateAdminKey("tundra", testSalt)

	tests := []struct {
		name   string
		world  string
		key    string
		status int
	}{
		{"own key", "meadow", meadowKey, http.StatusOK},
		{"other world's key", "meadow", tundraKey, http.StatusUnauthorized},
		{"other world accepts its own", "tundra", tundraKey, http.StatusOK},
		{"key under another salt", "meadow", auth.GenerateAdminKey("meadow", "other"), http.StatusUnauthorized},
		{"no key", "meadow", "", http.StatusUnauthorized},
		{"truncated key", "meadow", meadowKey[:len(meadowKey)-1], http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := 0
			h := adminStack(tt.world, &called)

			req := httptest.NewRequest("POST", "/sim/speed", strings.NewReader(`{"multiplier":2}`))
			if tt.key != "" {
				req.Header.Set(AdminKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("Expected %d, got %d", tt.status, w.Code)
			}
			if tt.status != http.StatusOK {
				if called != 0 {
					t.Error("Rejected request reached the handler")
				}
				var resp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode rejection: %v", err)
				}
				if resp.Error != "Unauthorized" || resp.Message != "Invalid admin key" {
					t.Errorf("Unexpected rejection %+v", resp)
				}
				return
			}
			if called != 1 {
				t.Errorf("Expected the handler once, got %d", called)
			}
		})
	}
}

func TestWithLoggingKeepsHandlerStatus(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
	}{
		{"vote queued", func(w http.ResponseWriter) {
			JSONResponse(w, http.StatusAccepted, models.CastVoteResponse{ElectionID: "e1", VoterID: "api-ann"})
		}, http.StatusAccepted},
		{"already voted", func(w http.ResponseWriter) {
			ErrorResponse(w, http.StatusConflict, "voter already voted in this election")
		}, http.StatusConflict},
		{"body only", func(w http.ResponseWriter) {
			io.WriteString(w, "OK")
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WithLogging(func(w http.ResponseWriter, r *http.Request) { tt.write(w) })(w, httptest.NewRequest("POST", "/elections/e1/votes", nil))
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestWithLoggingUnwrapsWriter(t *testing.T) {
	outer := httptest.NewRecorder()
	var inner http.ResponseWriter

	WithLogging(func(w http.ResponseWriter, r *http.Request) {
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			t.Fatal("Wrapped writer does not unwrap")
		}
		inner = u.Unwrap()
	})(outer, httptest.NewRequest("GET", "/stream", nil))

	if inner != outer {
		t.Error("Unwrap did not return the original writer")
	}
}

func TestParseVoteRequest(t *testing.T) {
	body := `{
		"voter_id": "ann",
		"traits": {"food_care": 7, "death_care": 12},
		"attributes": {"energy": {"current_kcal": 400, "max_kcal": 2000}, "housing": {"sheltered": false}}
	}`
	req := httptest.NewRequest("POST", "/elections/e1/votes", strings.NewReader(body))

	var parsed models.CastVoteRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("ParseJSONBody() error = %v", err)
	}
	if parsed.VoterID != "ann" || parsed.Traits.FoodCare != 7 || parsed.Traits.DeathCare != 12 {
		t.Errorf("Unexpected request %+v", parsed)
	}
	if parsed.Attributes.Energy == nil || parsed.Attributes.Energy.CurrentKcal != 400 {
		t.Errorf("Expected energy attribute, got %+v", parsed.Attributes.Energy)
	}
	if parsed.Attributes.Housing == nil || parsed.Attributes.Housing.Sheltered {
		t.Errorf("Expected unsheltered housing attribute, got %+v", parsed.Attributes.Housing)
	}
	// Attributes a client leaves out stay absent and contribute nothing to the rating
	if parsed.Attributes.Stomach != nil || parsed.Attributes.Reproductive != nil {
		t.Error("Expected omitted attributes to stay nil")
	}
}

func TestParseOpenElectionRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    models.OpenElectionRequest
		wantErr bool
	}{
		{"named with method", `{"name":"Harvest","method":"star"}`, models.OpenElectionRequest{Name: "Harvest", Method: "star"}, false},
		{"random method", `{"name":"Harvest"}`, models.OpenElectionRequest{Name: "Harvest"}, false},
		{"empty object", `{}`, models.OpenElectionRequest{}, false},
		{"no body", ``, models.OpenElectionRequest{}, true},
		{"malformed", `{"name":`, models.OpenElectionRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/elections", strings.NewReader(tt.body))
			var parsed models.OpenElectionRequest
			err := ParseJSONBody(req, &parsed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && parsed != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, parsed)
			}
		})
	}
}

func TestResponses(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		w := httptest.NewRecorder()
		ErrorResponse(w, http.StatusNotFound, "election not found")

		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Unexpected Content-Type %q", w.Header().Get("Content-Type"))
		}
		want := `{"error":"Not Found","message":"election not found"}`
		if got := strings.TrimSpace(w.Body.String()); got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	})

	t.Run("summary text", func(t *testing.T) {
		w := httptest.NewRecorder()
		TextResponse(w, http.StatusOK, "Election 3 (STAR)\nWinner: Mint\n")

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
			t.Errorf("Unexpected Content-Type %q", w.Header().Get("Content-Type"))
		}
		if !strings.HasPrefix(w.Body.String(), "Election 3 (STAR)") {
			t.Errorf("Unexpected body %q", w.Body.String())
		}
	})
}

func TestClientIPIdentifiesAnonymousVoter(t *testing.T) {
	// The same client behind a proxy chain and connecting directly
	// should vote under one identity
	proxied := httptest.NewRequest("POST", "/elections/e1/votes", nil)
	proxied.RemoteAddr = "10.0.0.1:4000"
	proxied.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	realIP := httptest.NewRequest("POST", "/elections/e1/votes", nil)
	realIP.RemoteAddr = "10.0.0.2:4000"
	realIP.Header.Set("X-Real-IP", "203.0.113.7")

	direct := httptest.NewRequest("POST", "/elections/e1/votes", nil)
	direct.RemoteAddr = "203.0.113.7:51234"

	var ids []string
	for _, req := range []*http.Request{proxied, realIP, direct} {
		ip := GetClientIP(req)
		if ip != "203.0.113.7" {
			t.Errorf("Expected client 203.0.113.7, got %q", ip)
		}
		id, err := auth.VoterID("", ip, testSalt)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if ids[0] != ids[1] || ids[1] != ids[2] {
		t.Errorf("Expected one voter identity, got %v", ids)
	}

	other := httptest.NewRequest("POST", "/elections/e1/votes", nil)
	other.RemoteAddr = "198.51.100.9:51234"
	otherID, _ := auth.VoterID("", GetClientIP(other), testSalt)
	if otherID == ids[0] {
		t.Error("Different clients share a voter identity")
	}
}
