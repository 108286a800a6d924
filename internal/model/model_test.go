package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Tenant", RoleTenant, true},
		{"tenant", RoleTenant, true},
		{"TENANT", RoleTenant, true},
		{" landlord ", RoleLandlord, true},
		{"Admin", RoleAdmin, true},
		{"admin", RoleAdmin, true},
		{"", RoleTenant, true}, // open registration defaults to tenant
		{"superuser", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeRole(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizeStatus(t *testing.T) {
	got, ok := NormalizeStatus("paid")
	assert.True(t, ok)
	assert.Equal(t, StatusPaid, got)

	got, ok = NormalizeStatus(" Pending ")
	assert.True(t, ok)
	assert.Equal(t, StatusPending, got)

	_, ok = NormalizeStatus("refunded")
	assert.False(t, ok)
}
