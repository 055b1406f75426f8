package security

import (
	"strings"
	"testing"
)

func TestOperationTiers(t *testing.T) {
	cases := []struct {
		operation string
		want      Tier
	}{
		{"extraction-run", TierAssessment},
		{"interpretation-run", TierAssessment},
		{"process-mining-run", TierAssessment},
		{"cutover-planning", TierAssessment},
		{"export", TierAssessment},
		{"migration-transform", TierDevelopment},
		{"migration-validate", TierDevelopment},
		{"migration-load-staging", TierStaging},
		{"staging-rollback", TierStaging},
		{"transport-release", TierStaging},
		{"migration-load-production", TierProduction},
		{"transport-import", TierProduction},
		{"drop-client", TierProduction}, // unknown operations get the strictest tier
	}
	for _, c := range cases {
		if got := OperationTier(c.operation); got != c.want {
			t.Errorf("OperationTier(%s) = %s, want %s", c.operation, got, c.want)
		}
	}
}

func TestApprovalPolicy(t *testing.T) {
	if RequiresApproval(TierAssessment) || RequiresApproval(TierDevelopment) {
		t.Error("tiers below staging must not require approval")
	}
	if !RequiresApproval(TierStaging) || !RequiresApproval(TierProduction) {
		t.Error("staging and production require approval")
	}
	if n := RequiredApprovers(TierAssessment); n != 0 {
		t.Errorf("assessment approvers = %d, want 0", n)
	}
	if n := RequiredApprovers(TierStaging); n != 1 {
		t.Errorf("staging approvers = %d, want 1", n)
	}
	if n := RequiredApprovers(TierProduction); n != 2 {
		t.Errorf("production approvers = %d, want 2", n)
	}
}

func TestAuthorizeAssessmentNeedsNoApprovers(t *testing.T) {
	if err := Authorize("extraction-run", "analyst", nil); err != nil {
		t.Fatalf("Authorize: %v", err)
	}
}

func TestAuthorizeStagingNeedsOneApprover(t *testing.T) {
	if err := Authorize("migration-load-staging", "analyst", nil); err == nil {
		t.Fatal("staging load authorized without approvers")
	}
	if err := Authorize("migration-load-staging", "analyst", []string{"lead"}); err != nil {
		t.Fatalf("Authorize with one approver: %v", err)
	}
}

func TestAuthorizeProductionNeedsTwoDistinctApprovers(t *testing.T) {
	if err := Authorize("transport-import", "analyst", []string{"lead"}); err == nil {
		t.Fatal("production operation authorized with one approver")
	}
	if err := Authorize("transport-import", "analyst", []string{"lead", "lead"}); err == nil {
		t.Fatal("repeated approver counted twice")
	}
	if err := Authorize("transport-import", "analyst", []string{"lead", "cio"}); err != nil {
		t.Fatalf("Authorize with two approvers: %v", err)
	}
}

func TestAuthorizeRejectsSelfApproval(t *testing.T) {
	err := Authorize("migration-load-staging", "analyst", []string{"analyst"})
	if err == nil {
		t.Fatal("requesting user approved their own operation")
	}
	if !strings.Contains(err.Error(), "staging") {
		t.Errorf("error does not name the tier: %v", err)
	}
}

func TestAuthorizeIgnoresBlankApprovers(t *testing.T) {
	if err := Authorize("migration-load-staging", "analyst", []string{"  ", ""}); err == nil {
		t.Fatal("blank approvers satisfied the policy")
	}
	if err := Authorize("migration-load-staging", "analyst", []string{" lead "}); err != nil {
		t.Fatalf("whitespace-wrapped approver rejected: %v", err)
	}
}
