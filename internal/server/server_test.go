package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/planstore"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/session"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collegeJSON = `{
	"name": "College",
	"currentAge": 38,
	"childCurrentAge": 8,
	"targetAge": 18,
	"baseCost": 1000000,
	"monthlyIncome": 150000,
	"inflationRatePct": 6,
	"expectedReturnRatePct": 12,
	"planYear": 2024
}`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	opts.Logger = zerolog.Nop()
	s := New(opts)
	t.Cleanup(s.Close)
	return s
}

func doRequest(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{Version: "1.2.3"})

	rec := doRequest(t, s, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"1.2.3"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCalculate_Success(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/goals/child-education/calculate", collegeJSON, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.GoalChildEducation, resp.Input.GoalType)
	assert.Equal(t, 10, resp.Result.YearsToGoal)
	assert.True(t, resp.Result.TotalGoalCost.Equal(decimal.RequireFromString("2328102.01")),
		"total goal cost %s", resp.Result.TotalGoalCost)
	assert.NotEmpty(t, resp.Title)
	assert.NotEmpty(t, resp.Result.Recommendations)
	assert.Empty(t, resp.Schedule)
}

func TestCalculate_WithSchedule(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"childCurrentAge": 8, "targetAge": 18, "baseCost": 1000000,
		"inflationRatePct": 6, "expectedReturnRatePct": 12,
		"wantLoan": true, "loanTenureYears": 5, "loanInterestRatePct": 9}`

	rec := doRequest(t, s, http.MethodPost, "/api/v1/goals/child_education/calculate?schedule=true", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Schedule, 60)
	assert.True(t, resp.Schedule[59].Closing.IsZero())
	assert.True(t, resp.Result.EMIAmount.IsPositive())
}

func TestCalculate_TitleFromEngineProfiles(t *testing.T) {
	only := profile.NewRegistry()
	only.Register(profile.Default().MustGet(domain.GoalRetirement))

	// The listed profiles do not drive calculation.
	s := newTestServer(t, Options{Profiles: only})
	rec := doRequest(t, s, http.MethodPost, "/api/v1/goals/child_education/calculate", collegeJSON, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Child's Education", resp.Title)

	// A goal the engine does not know is a 404, not a panic.
	engine := calculation.NewCalculationEngine()
	engine.Profiles = only
	s = newTestServer(t, Options{Engine: engine})
	rec = doRequest(t, s, http.MethodPost, "/api/v1/goals/child_education/calculate", collegeJSON, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeProblem(t, rec).Type)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"childCurrentAge": 8, "targetAge": 5, "baseCost": 0, "inflationRatePct": 6, "expectedReturnRatePct": 12}`

	rec := doRequest(t, s, http.MethodPost, "/api/v1/goals/child_education/calculate", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeValidation, p.Type)
	assert.Equal(t, "/api/v1/goals/child_education/calculate", p.Instance)

	fields := map[string]bool{}
	for _, e := range p.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["targetAge"], "errors: %+v", p.Errors)
	assert.True(t, fields["baseCost"], "errors: %+v", p.Errors)
}

func TestCalculate_BadRequests(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/goals/boat/calculate", collegeJSON, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeProblem(t, rec).Type)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/goals/vacation/calculate", `{"baseCost":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGoals(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/goals", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GoalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Goals, len(domain.AllGoalTypes()))
}

func TestSsyRate(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		year   string
		rate   string
		source string
	}{
		{"2024", "8.2", RateSourceTable},
		{"2022", "7.6", RateSourceTable},
		{"2013", "9.1", RateSourcePreTable},
		{"2030", "8.2", RateSourceProjected},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, "/api/v1/ssy/rates/"+tt.year, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp SsyRateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.RatePct.Equal(decimal.RequireFromString(tt.rate)), "rate %s", resp.RatePct)
			assert.Equal(t, tt.source, resp.Source)
			assert.Equal(t, tt.source == RateSourceTable, resp.Period != nil)
		})
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/ssy/rates/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/ssy/rates/1900", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "year", decodeProblem(t, rec).Errors[0].Field)
}

func TestSsySimulate(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ssy/simulate",
		`{"girlAge": 3, "annualDeposit": 150000, "startYear": 2024}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.SsyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.YearlyBreakdown, 18)
	assert.Equal(t, 2042, res.MaturityYear)
	assert.True(t, res.TotalInvestment.Equal(decimal.NewFromInt(150000*15)), "invested %s", res.TotalInvestment)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/ssy/simulate",
		`{"girlAge": 12, "annualDeposit": 100, "startYear": 2024}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, decodeProblem(t, rec).Errors, 2)
}

func TestPlans_RequireUser(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/plans/vacation", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrorTypeUnauthorized, decodeProblem(t, rec).Type)
}

func TestPlans_SaveAndLoad(t *testing.T) {
	store := planstore.NewMemoryStore()
	s := newTestServer(t, Options{Store: store})
	user := map[string]string{session.Header: "user-42"}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/plans/vacation", "", user)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPut, "/api/v1/plans/vacation",
		`{"name": "Japan", "currentAge": 32, "targetAge": 34, "baseCost": 350000}`, user)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved domain.SavedPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "user-42", saved.UserID)
	assert.Equal(t, domain.GoalVacation, saved.Input.GoalType)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/plans/vacation", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded domain.SavedPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, saved.ID, loaded.ID)

	other := map[string]string{session.Header: "user-43"}
	rec = doRequest(t, s, http.MethodGet, "/api/v1/plans/vacation", "", other)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlans_HTTPStoreRoundTrip(t *testing.T) {
	s := newTestServer(t, Options{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx := context.Background()
	client := planstore.NewHTTPStore(srv.URL)

	_, err := client.Load(ctx, "user-9", domain.GoalChildWedding)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	in := domain.GoalPlanInput{
		Name:            "Wedding",
		ChildCurrentAge: 20,
		TargetAge:       27,
		BaseCost:        decimal.NewFromInt(2500000),
		WantLoan:        true,
		LoanTenureYears: 5,
	}
	saved, err := client.Save(ctx, "user-9", domain.GoalChildWedding, in)
	require.NoError(t, err)

	loaded, err := client.Load(ctx, "user-9", domain.GoalChildWedding)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, "Wedding", loaded.Input.Name)
	assert.True(t, loaded.Input.BaseCost.Equal(in.BaseCost))
	assert.True(t, loaded.Input.WantLoan)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimitPerMinute: 1, BurstSize: 2})
	user := map[string]string{session.Header: "busy-user"}

	for i := 0; i < 2; i++ {
		rec := doRequest(t, s, http.MethodGet, "/api/v1/goals", "", user)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := doRequest(t, s, http.MethodGet, "/api/v1/goals", "", user)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, ErrorTypeRateLimit, decodeProblem(t, rec).Type)

	// Another caller has its own budget, and health checks are not limited.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/goals", "", map[string]string{session.Header: "quiet-user"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, s, http.MethodGet, "/health", "", user)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	allowed, remaining := rl.Allow("a")
	assert.True(t, allowed)
	assert.Equal(t, 4, remaining)

	assert.Equal(t, 0, rl.sweep(time.Now()))
	assert.Equal(t, 1, rl.sweep(time.Now().Add(LimiterTTL+time.Minute)))

	rl.Stop() // idempotent
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := doRequest(t, s, http.MethodGet, "/api/v2/nothing", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeHTTP, p.Type)
	assert.Equal(t, http.StatusNotFound, p.Status)
}

func TestRun_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	require.Eventually(t, func() bool { return s.echo.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + s.echo.ListenerAddr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
