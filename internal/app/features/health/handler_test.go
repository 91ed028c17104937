package health_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/features/health"
)

type fakeBreaker struct{ state string }

func (f fakeBreaker) BreakerState() string { return f.state }

func TestServe_ReportsBreakerState(t *testing.T) {
	for _, state := range []string{"closed", "half-open", "open"} {
		h := health.NewHandler(fakeBreaker{state: state}, zap.NewNop())

		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		h.Serve(rec, req)

		if rec.Code != 200 {
			t.Errorf("state %s: status = %d, want 200", state, rec.Code)
		}
		var body struct {
			Status  string `json:"status"`
			Backend string `json:"backend"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("state %s: decode body: %v", state, err)
		}
		if body.Status != "ok" || body.Backend != state {
			t.Errorf("state %s: body = %+v", state, body)
		}
	}
}
