package clinicconfig

import (
	"context"

	"github.com/vetnexa/clinic-api/internal/core"
)

// Direction of a flag transition.
type Direction bool

const (
	Activate   Direction = true
	Deactivate Direction = false
)

type ruleKey struct {
	Flag      string
	Direction Direction
}

// Rule is a precondition predicate for one (flag, direction) pair. It
// returns a *core.PreconditionError when the transition must be blocked
// and nil when it may proceed. Rules read the freshly-loaded clinic and
// may query live operational state; they never mutate anything.
type Rule func(ctx context.Context, clinic *core.Clinic, ops OperationalState) error

// defaultRules is the registry of gated transitions. Flags absent from
// the registry transition unconditionally. Adding a gated flag means
// registering one predicate here, not branching in the service.
func defaultRules() map[ruleKey]Rule {
	return map[ruleKey]Rule{
		{Flag: "hasFiscal", Direction: Activate}: func(ctx context.Context, clinic *core.Clinic, ops OperationalState) error {
			if clinic.Identity.CNPJ == "" {
				return core.Preconditionf("Cannot enable Fiscal module without CNPJ set in Identity.")
			}
			return nil
		},
		{Flag: "hasInternment", Direction: Deactivate}: func(ctx context.Context, clinic *core.Clinic, ops OperationalState) error {
			active, err := ops.CountActive(ctx, "internment", clinic.ID)
			if err != nil {
				return err
			}
			if active > 0 {
				perr := core.Preconditionf("Cannot disable Internment: %d active patients found.", active)
				perr.Count = active
				return perr
			}
			return nil
		},
	}
}
