// Package rbac evaluates role-binding predicates. A predicate is a set of rules, each naming a role and
// the scope in which a binding of that role grants access; the rules are OR-ed together.
package rbac

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	userroledomain "testplatform/backend/internal/userrole/domain"
)

const policyQuery = "data.testplatform.workspace_ownership.allow"

const ownershipPolicy = `package testplatform.workspace_ownership

default allow := false

allow if {
	some rule in input.rules
	some binding in input.bindings
	binding.role_id == rule.role_id
	in_scope(rule.scope, binding.source_id)
}

in_scope("organization", source) if {
	source != ""
	source == input.resource.organization_id
}

in_scope("workspace", source) if {
	source != ""
	source == input.resource.workspace_id
}

in_scope("system", source) if {
	source == input.system_source_id
}
`

// Scope says which resource ID a binding's source must equal for a rule to match.
type Scope string

const (
	ScopeOrganization Scope = "organization"
	ScopeWorkspace    Scope = "workspace"
	// ScopeSystem matches only bindings whose source is userroledomain.SystemSourceID.
	ScopeSystem Scope = "system"
)

// Rule grants access to holders of RoleID within Scope.
type Rule struct {
	RoleID string
	Scope  Scope
}

var (
	OrgAdminRule    = Rule{RoleID: userroledomain.RoleOrgAdmin, Scope: ScopeOrganization}
	TestManagerRule = Rule{RoleID: userroledomain.RoleTestManager, Scope: ScopeWorkspace}
	AdminRule       = Rule{RoleID: userroledomain.RoleAdmin, Scope: ScopeSystem}
)

// Binding is the part of a user-role binding the predicate reads.
type Binding struct {
	RoleID   string
	SourceID string
}

// Resource identifies what is being accessed. Either ID may be empty.
type Resource struct {
	WorkspaceID    string
	OrganizationID string
}

// BindingsOf converts user-role bindings into predicate bindings.
func BindingsOf(roles []userroledomain.UserRole) []Binding {
	out := make([]Binding, 0, len(roles))
	for _, r := range roles {
		out = append(out, Binding{RoleID: r.RoleID, SourceID: r.SourceID})
	}
	return out
}

// Evaluator decides whether any binding satisfies any rule for the resource.
type Evaluator interface {
	Allowed(ctx context.Context, bindings []Binding, res Resource, rules ...Rule) (bool, error)
}

// OPAEvaluator evaluates the ownership predicate with an in-process OPA Rego query prepared once.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles the ownership policy.
func NewOPAEvaluator(ctx context.Context) (*OPAEvaluator, error) {
	q, err := rego.New(
		rego.Query(policyQuery),
		rego.Module("workspace_ownership.rego", ownershipPolicy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare ownership policy: %w", err)
	}
	return &OPAEvaluator{query: q}, nil
}

// Allowed reports whether at least one binding matches at least one rule. No rules means not allowed.
func (e *OPAEvaluator) Allowed(ctx context.Context, bindings []Binding, res Resource, rules ...Rule) (bool, error) {
	if len(rules) == 0 || len(bindings) == 0 {
		return false, nil
	}
	rs, err := e.query.Eval(ctx, rego.EvalInput(buildInput(bindings, res, rules)))
	if err != nil {
		return false, fmt.Errorf("eval ownership policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("ownership policy returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("ownership policy returned %T, want bool", rs[0].Expressions[0].Value)
	}
	return allowed, nil
}

// HealthCheck evaluates the policy against a fixed input with a known answer.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	ok, err := e.Allowed(ctx,
		[]Binding{{RoleID: userroledomain.RoleOrgAdmin, SourceID: "org-health"}},
		Resource{OrganizationID: "org-health"},
		OrgAdminRule)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ownership policy denied a matching binding")
	}
	return nil
}

func buildInput(bindings []Binding, res Resource, rules []Rule) map[string]interface{} {
	ruleList := make([]interface{}, 0, len(rules))
	for _, r := range rules {
		ruleList = append(ruleList, map[string]interface{}{
			"role_id": r.RoleID,
			"scope":   string(r.Scope),
		})
	}
	bindingList := make([]interface{}, 0, len(bindings))
	for _, b := range bindings {
		bindingList = append(bindingList, map[string]interface{}{
			"role_id":   b.RoleID,
			"source_id": b.SourceID,
		})
	}
	return map[string]interface{}{
		"rules":            ruleList,
		"bindings":         bindingList,
		"system_source_id": userroledomain.SystemSourceID,
		"resource": map[string]interface{}{
			"workspace_id":    res.WorkspaceID,
			"organization_id": res.OrganizationID,
		},
	}
}
