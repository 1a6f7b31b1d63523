package campaign

import (
	"fmt"

	"go_shop/internal/model"
)

// Issue messages shown to buyers (storefront language is French)
const (
	IssueMembershipRequired = "Adhésion coopérative requise"
	IssueInsuranceRequired  = "Assurance mutualiste requise"
)

// Declaration holds the buyer-declared attributes checked against a
// campaign's eligibility policy. Declarations are self-reported; the
// storefront records them on the order as-is.
type Declaration struct {
	IsMember          bool   `json:"isMember"`
	HasInsurance      bool   `json:"hasInsurance"`
	InsuranceProvider string `json:"insuranceProvider"`
	Quantity          int    `json:"quantity"`
}

// EligibilityResult is the outcome of evaluating a declaration against a
// policy. Transient: only persisted when embedded into an order at checkout.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Issues   []string `json:"issues"`
}

// EvaluateEligibility checks a buyer declaration against a campaign policy.
// Every rule is evaluated (no short-circuit); each failing rule appends one
// issue message. A policy with all requirements disabled accepts anything.
// Pure: no side effects, inputs are never mutated.
func EvaluateEligibility(policy model.EligibilityPolicy, d Declaration) EligibilityResult {
	var issues []string

	if policy.RequireMembership && !d.IsMember {
		issues = append(issues, IssueMembershipRequired)
	}

	if policy.RequireMutualInsurance {
		if !d.HasInsurance {
			issues = append(issues, IssueInsuranceRequired)
		} else if len(policy.AcceptedInsurers) > 0 && !insurerAccepted(policy.AcceptedInsurers, d.InsuranceProvider) {
			issues = append(issues, fmt.Sprintf("Assureur non reconnu: %s", d.InsuranceProvider))
		}
	}

	if policy.MinQuantity > 0 && d.Quantity < policy.MinQuantity {
		issues = append(issues, fmt.Sprintf("Quantité minimale requise: %d", policy.MinQuantity))
	}

	return EligibilityResult{
		Eligible: len(issues) == 0,
		Issues:   issues,
	}
}

func insurerAccepted(accepted []string, provider string) bool {
	for _, a := range accepted {
		if a == provider {
			return true
		}
	}
	return false
}
