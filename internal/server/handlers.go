package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/session"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/shopspring/decimal"
)

// CalculateResponse is the body returned by the calculate endpoint
type CalculateResponse struct {
	Title    string                        `json:"title"`
	Input    domain.GoalPlanInput          `json:"input"`
	Result   *domain.CalculationResult     `json:"result"`
	Schedule []calculation.AmortizationRow `json:"schedule,omitempty"`
}

// GoalsResponse lists the goal profiles the planner supports
type GoalsResponse struct {
	Goals []profile.GoalProfile `json:"goals"`
}

// SsyRateResponse is the rate resolved for one calendar year
type SsyRateResponse struct {
	Year    int                   `json:"year"`
	RatePct decimal.Decimal       `json:"ratePct"`
	Source  string                `json:"source"`
	Period  *domain.SsyRatePeriod `json:"period,omitempty"`
}

// Rate sources
const (
	RateSourceTable     = "table"
	RateSourceProjected = "projected"
	RateSourcePreTable  = "pre_table"
)

// goalTypeParam parses the :goalType path segment
func goalTypeParam(c echo.Context) (domain.GoalType, error) {
	return domain.ParseGoalType(c.Param("goalType"))
}

// Calculate handles POST /api/v1/goals/:goalType/calculate
func (s *Server) Calculate(c echo.Context) error {
	gt, err := goalTypeParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var in domain.GoalPlanInput
	if err := c.Bind(&in); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	in.GoalType = gt

	p, err := s.engine.Profiles.Lookup(gt)
	if err != nil {
		return respondError(c, err)
	}
	res, err := s.engine.Calculate(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	resp := CalculateResponse{
		Title:  p.Title,
		Input:  in,
		Result: res,
	}
	if want, _ := strconv.ParseBool(c.QueryParam("schedule")); want && in.WantLoan {
		sched, err := s.engine.LoanSchedule(in)
		if err != nil {
			return respondError(c, err)
		}
		resp.Schedule = sched.Rows()
	}
	return c.JSON(http.StatusOK, resp)
}

// ListGoals handles GET /api/v1/goals
func (s *Server) ListGoals(c echo.Context) error {
	return c.JSON(http.StatusOK, GoalsResponse{Goals: s.profiles.List()})
}

// SsyRate handles GET /api/v1/ssy/rates/:year
func (s *Server) SsyRate(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be a whole number"},
		})
	}
	if err := ssy.ValidateYear(year, s.limits.MinYear, s.limits.MaxYear); err != nil {
		return respondError(c, err)
	}

	rate, period := s.schedule.Resolve(year)
	resp := SsyRateResponse{Year: year, RatePct: rate, Period: period, Source: RateSourceTable}
	if period == nil {
		resp.Source = RateSourcePreTable
		if year > s.schedule.LastTableYear() {
			resp.Source = RateSourceProjected
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// SsySimulate handles POST /api/v1/ssy/simulate
func (s *Server) SsySimulate(c echo.Context) error {
	var in domain.SsyInput
	if err := c.Bind(&in); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	res, err := s.schedule.Simulate(in, s.limits)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetPlan handles GET /api/v1/plans/:goalType
func (s *Server) GetPlan(c echo.Context) error {
	gt, err := goalTypeParam(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	userID, err := session.UserID(ctx)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := s.store.Load(ctx, userID, gt)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// PutPlan handles PUT /api/v1/plans/:goalType. Plans are stored as sent so
// a half-filled form can be saved and resumed.
func (s *Server) PutPlan(c echo.Context) error {
	gt, err := goalTypeParam(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	userID, err := session.UserID(ctx)
	if err != nil {
		return respondError(c, err)
	}

	var in domain.GoalPlanInput
	if err := c.Bind(&in); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plan, err := s.store.Save(ctx, userID, gt, in)
	if err != nil {
		return respondError(c, err)
	}
	s.logger.Debug().Str("goal_type", string(gt)).Str("plan_id", plan.ID.String()).Msg("Plan saved")
	return c.JSON(http.StatusOK, plan)
}

// Health handles GET /health
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}
