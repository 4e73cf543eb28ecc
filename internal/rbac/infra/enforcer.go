package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// OwnerModel is a domain-scoped RBAC model: a subject holds a role inside a
// domain and the role's permissions apply only within that domain.
const OwnerModel = `
[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(OwnerModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
