package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcer(t *testing.T) {
	enforcer, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{"patient", "/switch-requests", "POST", true},
		{"agency", "/switch-requests", "POST", false},
		{"admin", "/switch-requests", "POST", false},
		{"agency", "/switch-requests/3f1c/status", "PUT", true},
		{"patient", "/agencies", "POST", false},
		{"agency", "/agencies", "POST", true},
		{"agency", "/agencies/a-1", "DELETE", false},
		{"admin", "/agencies/a-1", "DELETE", true},
		{"admin", "/agencies/a-1/verify", "POST", true},
		{"patient", "/agencies/a-1/members", "GET", false},
		{"agency", "/agencies/a-1/members/m-1", "DELETE", true},
		{"patient", "/admin/audit-logs", "GET", false},
		{"admin", "/admin/audit-logs/export", "GET", true},
		{"patient", "/profiles", "GET", false},
		{"patient", "/profiles/me", "PUT", true},
		{"agency", "/conversations/c-1/ws", "GET", true},
		{"patient", "/notifications/read-all", "POST", true},
		{"patient", "/notifications/n-1/read", "POST", true},
		{"guest", "/profiles/me", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			allowed, err := enforcer.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestLoadPolicyRejectsUnknownType(t *testing.T) {
	enforcer, err := NewEnforcer()
	require.NoError(t, err)

	err = loadPolicy(enforcer, "x, admin, /a, GET")
	assert.Error(t, err)
}
