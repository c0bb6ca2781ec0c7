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

// policies is the full authorization matrix. Roles are the two values the
// user table knows about; employee-scoped ownership checks (own request
// only) live in the services, not here.
var policies = [][]string{
	{"EMPLOYEE", "leave", "create"},
	{"EMPLOYEE", "leave", "read_own"},
	{"EMPLOYEE", "leave", "cancel"},
	{"MANAGER", "leave", "create"},
	{"MANAGER", "leave", "read_own"},
	{"MANAGER", "leave", "read_all"},
	{"MANAGER", "leave", "decide"},
	{"EMPLOYEE", "user", "read_own"},
	{"MANAGER", "user", "read_own"},
	{"MANAGER", "user", "create"},
	{"MANAGER", "user", "read_all"},
	{"EMPLOYEE", "balance", "read"},
	{"MANAGER", "balance", "read"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
