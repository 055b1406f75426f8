// Package security implements the four-level operation policy gate and
// the hash-chained audit log.
package security

import (
	"fmt"
	"strings"
)

// Tier is a policy level. Higher tiers carry stricter approval and audit
// requirements.
type Tier int

const (
	TierAssessment  Tier = 1
	TierDevelopment Tier = 2
	TierStaging     Tier = 3
	TierProduction  Tier = 4
)

func (t Tier) String() string {
	switch t {
	case TierAssessment:
		return "assessment"
	case TierDevelopment:
		return "development"
	case TierStaging:
		return "staging"
	case TierProduction:
		return "production"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// operationTiers maps operations to their policy tier. Unknown
// operations default to the most restrictive tier.
var operationTiers = map[string]Tier{
	"extraction-run":            TierAssessment,
	"interpretation-run":        TierAssessment,
	"process-mining-run":        TierAssessment,
	"cutover-planning":          TierAssessment,
	"export":                    TierAssessment,
	"migration-transform":       TierDevelopment,
	"migration-validate":        TierDevelopment,
	"migration-load-staging":    TierStaging,
	"staging-rollback":          TierStaging,
	"transport-release":         TierStaging,
	"migration-load-production": TierProduction,
	"transport-import":          TierProduction,
}

// OperationTier returns the tier for the named operation. Operations not
// in the policy table are treated as production-tier.
func OperationTier(operation string) Tier {
	if t, ok := operationTiers[operation]; ok {
		return t
	}
	return TierProduction
}

// RequiresApproval reports whether the tier needs sign-off before
// execution.
func RequiresApproval(t Tier) bool {
	return t >= TierStaging
}

// RequiredApprovers returns how many distinct approvers the tier needs.
func RequiredApprovers(t Tier) int {
	switch {
	case t >= TierProduction:
		return 2
	case t >= TierStaging:
		return 1
	}
	return 0
}

// Authorize checks the approver list against the tier's policy.
// Approvers must be distinct, and the requesting user cannot approve
// their own operation.
func Authorize(operation, user string, approvers []string) error {
	tier := OperationTier(operation)
	need := RequiredApprovers(tier)
	if need == 0 {
		return nil
	}
	distinct := make(map[string]bool)
	for _, a := range approvers {
		a = strings.TrimSpace(a)
		if a == "" || a == user {
			continue
		}
		distinct[a] = true
	}
	if len(distinct) < need {
		return fmt.Errorf("operation %s is %s tier and needs %d distinct approver(s), got %d",
			operation, tier, need, len(distinct))
	}
	return nil
}
