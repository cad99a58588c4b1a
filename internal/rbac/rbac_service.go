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

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Policy table mirrors the role matrix of the admin UI: the ordinary
// "employee" role can only read payroll, approvals and payouts are
// admin-only, and roster management belongs to admin/hr.
var policies = [][]string{
	{"admin", "employees", "read"}, {"hr", "employees", "read"},
	{"admin", "employees", "create"}, {"hr", "employees", "create"},
	{"admin", "employees", "update"}, {"hr", "employees", "update"},
	{"admin", "employees", "delete"},

	{"admin", "payroll", "read"}, {"hr", "payroll", "read"}, {"employee", "payroll", "read"},
	{"admin", "payroll", "create"}, {"hr", "payroll", "create"},
	{"admin", "payroll", "update"}, {"hr", "payroll", "update"},
	{"admin", "payroll", "approve"},
	{"admin", "payroll", "pay"},
	{"admin", "payroll", "delete"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
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

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
