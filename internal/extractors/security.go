package extractors

import (
	"context"

	"github.com/erplens/erplens/internal/extract"
	"github.com/erplens/erplens/internal/gateway"
)

// SecurityUsers extracts user masters and profile assignments.
type SecurityUsers struct {
	extract.Base
}

func NewSecurityUsers() *SecurityUsers {
	return &SecurityUsers{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "security.users",
			Module:      "BASIS",
			Category:    extract.CategorySecurity,
			DisplayName: "User masters",
		},
		Tables: []extract.ExpectedTable{
			{Name: "USR02", Description: "User logon data", Critical: true},
			{Name: "UST04", Description: "User profile assignments"},
		},
		SchemaVersion: 1,
	}}
}

func (x *SecurityUsers) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "USR02", gateway.ReadOptions{}); ok {
		locked := 0
		for _, r := range rs.Rows {
			if str(r, "UFLAG") != "0" {
				locked++
			}
		}
		res.AddSection("users", &extract.Section{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Summary: map[string]float64{"locked": float64(locked)},
		})
	}
	if rs, ok := x.ReadTable(ctx, ec, "UST04", gateway.ReadOptions{}); ok {
		wideProfiles := make([]map[string]interface{}, 0)
		for _, r := range rs.Rows {
			if str(r, "PROFILE") == "SAP_ALL" {
				wideProfiles = append(wideProfiles, r)
			}
		}
		res.AddRows("profileAssignments", rs.Columns, rs.Rows)
		res.AddRows("wideProfiles", rs.Columns, wideProfiles)
	}
	return res, nil
}

// SecurityRoles extracts roles, role-user assignments, and authorization
// values. Scheduling follows the user extractor so role analysis can
// assume user masters are already captured.
type SecurityRoles struct {
	extract.Base
}

func NewSecurityRoles() *SecurityRoles {
	return &SecurityRoles{Base: extract.Base{
		Descriptor: extract.Identity{
			ID:          "security.roles",
			Module:      "BASIS",
			Category:    extract.CategorySecurity,
			DisplayName: "Roles and authorizations",
		},
		Tables: []extract.ExpectedTable{
			{Name: "AGR_DEFINE", Description: "Role definitions", Critical: true},
			{Name: "AGR_USERS", Description: "Role to user assignments", Critical: true},
			{Name: "AGR_1251", Description: "Role authorization values"},
		},
		SchemaVersion: 1,
	}}
}

func (x *SecurityRoles) DependsOn() []string {
	return []string{"security.users"}
}

func (x *SecurityRoles) Extract(ctx context.Context, ec *extract.Context) (*extract.Result, error) {
	x.Begin(ec)
	res := extract.NewResult(x.Descriptor.ID)

	if rs, ok := x.ReadTable(ctx, ec, "AGR_DEFINE", gateway.ReadOptions{}); ok {
		res.AddRows("roles", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "AGR_USERS", gateway.ReadOptions{}); ok {
		res.AddRows("roleAssignments", rs.Columns, rs.Rows)
	}
	if rs, ok := x.ReadTable(ctx, ec, "AGR_1251", gateway.ReadOptions{}); ok {
		critical := make([]map[string]interface{}, 0)
		for _, r := range rs.Rows {
			// Wildcard transaction or development access is a migration
			// security finding regardless of who holds it.
			if str(r, "LOW") == "*" {
				critical = append(critical, r)
			}
		}
		res.AddRows("authorizations", rs.Columns, rs.Rows)
		res.AddRows("criticalAuthorizations", rs.Columns, critical)
	}
	return res, nil
}
