package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/profile"
)

// DelayGoal pushes the target age out by a number of years, giving the
// investments longer to grow while the cost keeps inflating.
type DelayGoal struct {
	Years int
}

func (dg *DelayGoal) Name() string {
	return "delay_goal"
}

func (dg *DelayGoal) Description() string {
	return fmt.Sprintf("Delay the goal by %d year(s)", dg.Years)
}

func (dg *DelayGoal) Validate(base domain.GoalPlanInput) error {
	if dg.Years <= 0 {
		return NewTransformError(dg.Name(), "validate", fmt.Sprintf("years must be positive, got %d", dg.Years), nil)
	}
	return nil
}

func (dg *DelayGoal) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.TargetAge += dg.Years
	if base.LifeExpectancy > 0 && base.LifeExpectancy <= base.TargetAge {
		return domain.GoalPlanInput{}, NewTransformError(dg.Name(), "apply",
			fmt.Sprintf("target age %d would reach life expectancy %d", base.TargetAge, base.LifeExpectancy), nil)
	}
	return base, nil
}

// SetTargetAge moves the goal to an absolute target age
type SetTargetAge struct {
	Age int
}

func (st *SetTargetAge) Name() string {
	return "set_target_age"
}

func (st *SetTargetAge) Description() string {
	return fmt.Sprintf("Set the target age to %d", st.Age)
}

func (st *SetTargetAge) Validate(base domain.GoalPlanInput) error {
	if st.Age < 0 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", st.Age), nil)
	}
	p, ok := profile.Default().Get(base.GoalType)
	start := base.StartAge(ok && p.ChildRelative)
	if st.Age < start {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("age %d is before the starting age %d", st.Age, start), nil)
	}
	return nil
}

func (st *SetTargetAge) Apply(base domain.GoalPlanInput) (domain.GoalPlanInput, error) {
	base.TargetAge = st.Age
	return base, nil
}
