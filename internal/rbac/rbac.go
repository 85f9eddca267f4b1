// Package rbac enforces the fixed role model of the leave workflow. The
// role set is closed, so the casbin model and policies are embedded
// rather than loaded from a policy store.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// groupings let every role do what a plain employee can.
var groupings = [][]string{
	{"supervisor", "employee"},
	{"project_manager", "employee"},
	{"hr_manager", "employee"},
	{"super_admin", "employee"},
	{"supervisor", "approver"},
	{"project_manager", "approver"},
	{"hr_manager", "approver"},
}

var policies = [][]string{
	{"employee", "leave", "create"},
	{"employee", "leave", "read"},
	{"employee", "notification", "read"},
	{"employee", "notification", "update"},
	{"employee", "profile", "read"},
	{"employee", "profile", "update"},
	{"approver", "leave", "review"},
	{"hr_manager", "users", "read"},
	{"super_admin", "users", "read"},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := enforcer.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
