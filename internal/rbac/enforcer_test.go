package rbac_test

import (
	"testing"

	"go-leave/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforcerMatrix(t *testing.T) {
	e, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"EMPLOYEE", "leave", "create", true},
		{"EMPLOYEE", "leave", "read_own", true},
		{"EMPLOYEE", "leave", "cancel", true},
		{"EMPLOYEE", "leave", "read_all", false},
		{"EMPLOYEE", "leave", "decide", false},
		{"MANAGER", "leave", "read_all", true},
		{"MANAGER", "leave", "decide", true},
		{"EMPLOYEE", "user", "create", false},
		{"MANAGER", "user", "create", true},
		{"EMPLOYEE", "balance", "read", true},
		{"MANAGER", "balance", "read", true},
		{"INTERN", "leave", "create", false},
	}

	for _, tc := range cases {
		allowed, err := e.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed,
			"%s %s %s", tc.role, tc.resource, tc.action)
	}
}
