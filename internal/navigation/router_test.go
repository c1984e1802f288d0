package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/douradinams/Douradinams/internal/models"
)

var (
	staff   = models.AuthUser{Role: models.RoleStaff, ID: "admin-1"}
	support = models.AuthUser{Role: models.RoleSupport}
	student = models.AuthUser{Role: models.RoleStudent, ID: "stu000001"}
	anon    = models.AuthUser{}
)

func TestLoginBranchesByRole(t *testing.T) {
	tests := []struct {
		name string
		user models.AuthUser
		want State
	}{
		{"staff", staff, State{Screen: ScreenDashboard}},
		{"support", support, State{Screen: ScreenSupport}},
		{"student", student, State{Screen: ScreenView, StudentID: "stu000001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Next(Initial(), tt.user, ActionLogin, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.State)
			assert.False(t, res.ClearSession)
		})
	}

	_, err := Next(Initial(), anon, ActionLogin, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStaffDashboardFlow(t *testing.T) {
	dash := State{Screen: ScreenDashboard}

	res, err := Next(dash, staff, ActionNew, "")
	require.NoError(t, err)
	assert.Equal(t, State{Screen: ScreenForm}, res.State)

	res, err = Next(dash, staff, ActionEdit, "abc")
	require.NoError(t, err)
	assert.Equal(t, State{Screen: ScreenForm, StudentID: "abc"}, res.State)

	for _, action := range []Action{ActionCancel, ActionSave} {
		res, err = Next(State{Screen: ScreenForm, StudentID: "abc"}, staff, action, "")
		require.NoError(t, err)
		assert.Equal(t, dash, res.State)
	}

	res, err = Next(dash, staff, ActionView, "abc")
	require.NoError(t, err)
	assert.Equal(t, State{Screen: ScreenView, StudentID: "abc"}, res.State)

	res, err = Next(res.State, staff, ActionBack, "")
	require.NoError(t, err)
	assert.Equal(t, dash, res.State)
}

func TestBackBranchesByRole(t *testing.T) {
	view := State{Screen: ScreenView, StudentID: "stu000001"}

	res, err := Next(view, support, ActionBack, "")
	require.NoError(t, err)
	assert.Equal(t, State{Screen: ScreenSupport}, res.State)

	res, err = Next(view, student, ActionBack, "")
	require.NoError(t, err)
	assert.Equal(t, Initial(), res.State)
	assert.True(t, res.ClearSession)
}

func TestLogoutFromAnywhere(t *testing.T) {
	states := []State{
		Initial(),
		{Screen: ScreenDashboard},
		{Screen: ScreenForm},
		{Screen: ScreenView, StudentID: "x"},
		{Screen: ScreenSupport},
	}
	for _, user := range []models.AuthUser{staff, support, student, anon} {
		for _, st := range states {
			res, err := Next(st, user, ActionLogout, "")
			require.NoError(t, err)
			assert.Equal(t, Initial(), res.State)
			assert.True(t, res.ClearSession)
		}
	}
}

func TestForbiddenTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current State
		user    models.AuthUser
		action  Action
		id      string
		wantErr error
	}{
		{"student on dashboard", State{Screen: ScreenDashboard}, student, ActionNew, "", ErrForbidden},
		{"support on form", State{Screen: ScreenForm}, support, ActionSave, "", ErrForbidden},
		{"staff on support", State{Screen: ScreenSupport}, staff, ActionBack, "", ErrForbidden},
		{"anonymous view", State{Screen: ScreenView, StudentID: "x"}, anon, ActionBack, "", ErrForbidden},
		{"student views another", State{Screen: ScreenView, StudentID: "other"}, student, ActionBack, "", ErrForbidden},
		{"view without id", State{Screen: ScreenDashboard}, staff, ActionView, "", ErrStudentRequired},
		{"edit without id", State{Screen: ScreenDashboard}, staff, ActionEdit, "", ErrStudentRequired},
		{"save from dashboard", State{Screen: ScreenDashboard}, staff, ActionSave, "", ErrInvalidTransition},
		{"new from login", Initial(), staff, ActionNew, "", ErrInvalidTransition},
		{"login from view", State{Screen: ScreenView, StudentID: "x"}, staff, ActionLogin, "", ErrInvalidTransition},
		{"edit from support", State{Screen: ScreenSupport}, support, ActionEdit, "x", ErrInvalidTransition},
		{"unknown screen", State{Screen: "settings"}, staff, ActionBack, "", ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Next(tt.current, tt.user, tt.action, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
