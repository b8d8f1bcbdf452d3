package validation

import (
	validationerrors "go-mission/internal/validation/errors"

	"github.com/google/uuid"
)

// GuardResult is the outcome of a transition guard. Reason is nil when the
// transition is allowed.
type GuardResult struct {
	Allowed bool
	Reason  error
}

func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Reason
}

func deny(reason error) GuardResult {
	return GuardResult{Allowed: false, Reason: reason}
}

// AdvanceContext is the full chain of one mission plus the step being decided.
type AdvanceContext struct {
	Chain  []MissionValidation
	StepID uuid.UUID
}

// CanAdvance evaluates whether StepID may be decided now.
// Rules:
// - the step belongs to the chain
// - the step is still PENDING
// - no earlier step was REJECTED
// - the step has the smallest PENDING index
func CanAdvance(ctx AdvanceContext) GuardResult {
	var target *MissionValidation
	for i := range ctx.Chain {
		if ctx.Chain[i].ID == ctx.StepID {
			target = &ctx.Chain[i]
			break
		}
	}
	if target == nil {
		return deny(validationerrors.ErrValidationNotFound)
	}

	if target.Status != StatusPending {
		return deny(validationerrors.ErrAlreadyResolved)
	}

	for _, step := range ctx.Chain {
		if step.StepIndex < target.StepIndex && step.Status == StatusRejected {
			return deny(validationerrors.ErrChainRejected)
		}
	}

	if next, ok := NextPending(ctx.Chain); !ok || next.StepIndex != target.StepIndex {
		return deny(validationerrors.ErrOutOfOrderValidation)
	}

	return GuardResult{Allowed: true}
}

// NextPending returns the PENDING step with the smallest index.
func NextPending(chain []MissionValidation) (MissionValidation, bool) {
	var next MissionValidation
	found := false
	for _, step := range chain {
		if step.Status != StatusPending {
			continue
		}
		if !found || step.StepIndex < next.StepIndex {
			next = step
			found = true
		}
	}
	return next, found
}

// OverallStatus is REJECTED as soon as one step is rejected, APPROVED once
// every step is approved, PENDING otherwise. An empty chain is PENDING.
func OverallStatus(chain []MissionValidation) string {
	if len(chain) == 0 {
		return StatusPending
	}
	approved := 0
	for _, step := range chain {
		switch step.Status {
		case StatusRejected:
			return StatusRejected
		case StatusApproved:
			approved++
		}
	}
	if approved == len(chain) {
		return StatusApproved
	}
	return StatusPending
}

func Eligibility(chain []MissionValidation) string {
	switch OverallStatus(chain) {
	case StatusApproved:
		return EligibilityEligible
	case StatusRejected:
		return EligibilityIneligible
	default:
		return EligibilityPending
	}
}

func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
