// Package navigation holds the screen state machine shared by every client.
// It is pure: callers keep the current state and the server only answers
// what comes next for the caller's role.
package navigation

import (
	"errors"
	"fmt"

	"github.com/douradinams/Douradinams/internal/models"
)

// Screen names one of the five client screens.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
	ScreenForm      Screen = "form"
	ScreenView      Screen = "view"
	ScreenSupport   Screen = "support"
)

// Action is a user-triggered transition.
type Action string

const (
	ActionLogin  Action = "login"
	ActionNew    Action = "new"
	ActionEdit   Action = "edit"
	ActionView   Action = "view"
	ActionCancel Action = "cancel"
	ActionSave   Action = "save"
	ActionBack   Action = "back"
	ActionLogout Action = "logout"
)

var (
	// ErrForbidden is returned when the role may not enter or stay on a screen.
	ErrForbidden = errors.New("navigation: role not allowed on screen")
	// ErrInvalidTransition is returned for actions the current screen does not offer.
	ErrInvalidTransition = errors.New("navigation: invalid transition")
	// ErrStudentRequired is returned when view or edit lacks a student id.
	ErrStudentRequired = errors.New("navigation: student id required")
)

// State is the current screen plus its optional student.
type State struct {
	Screen    Screen `json:"screen"`
	StudentID string `json:"studentId,omitempty"`
}

// Result is the outcome of a transition. ClearSession tells the client to
// drop its token.
type Result struct {
	State        State `json:"state"`
	ClearSession bool  `json:"clearSession"`
}

// Initial is the state every session starts in.
func Initial() State {
	return State{Screen: ScreenLogin}
}

// Next applies action to current for user. studentID is the target of new,
// edit and view actions.
func Next(current State, user models.AuthUser, action Action, studentID string) (Result, error) {
	if action == ActionLogout {
		return Result{State: Initial(), ClearSession: true}, nil
	}
	if err := Allowed(current, user); err != nil {
		return Result{}, err
	}

	var next State
	switch current.Screen {
	case ScreenLogin:
		if action != ActionLogin {
			return Result{}, invalid(current, action)
		}
		return afterLogin(user)
	case ScreenDashboard:
		switch action {
		case ActionNew:
			next = State{Screen: ScreenForm}
		case ActionEdit:
			next = State{Screen: ScreenForm, StudentID: studentID}
			if studentID == "" {
				return Result{}, ErrStudentRequired
			}
		case ActionView:
			next = State{Screen: ScreenView, StudentID: studentID}
		default:
			return Result{}, invalid(current, action)
		}
	case ScreenForm:
		switch action {
		case ActionCancel, ActionSave:
			next = State{Screen: ScreenDashboard}
		default:
			return Result{}, invalid(current, action)
		}
	case ScreenView:
		if action != ActionBack {
			return Result{}, invalid(current, action)
		}
		return back(user)
	case ScreenSupport:
		return Result{}, invalid(current, action)
	default:
		return Result{}, fmt.Errorf("%w: unknown screen %q", ErrInvalidTransition, current.Screen)
	}

	if err := Allowed(next, user); err != nil {
		return Result{}, err
	}
	return Result{State: next}, nil
}

// Allowed reports whether user may be on state.
func Allowed(state State, user models.AuthUser) error {
	switch state.Screen {
	case ScreenLogin:
		return nil
	case ScreenDashboard, ScreenForm:
		return requireRole(user.Role, models.RoleStaff)
	case ScreenSupport:
		return requireRole(user.Role, models.RoleSupport)
	case ScreenView:
		if state.StudentID == "" {
			return ErrStudentRequired
		}
		switch user.Role {
		case models.RoleStaff, models.RoleSupport:
			return nil
		case models.RoleStudent:
			if user.ID != state.StudentID {
				return ErrForbidden
			}
			return nil
		case models.RoleNone:
			return ErrForbidden
		default:
			return ErrForbidden
		}
	default:
		return fmt.Errorf("%w: unknown screen %q", ErrInvalidTransition, state.Screen)
	}
}

func afterLogin(user models.AuthUser) (Result, error) {
	switch user.Role {
	case models.RoleStaff:
		return Result{State: State{Screen: ScreenDashboard}}, nil
	case models.RoleSupport:
		return Result{State: State{Screen: ScreenSupport}}, nil
	case models.RoleStudent:
		if user.ID == "" {
			return Result{}, ErrStudentRequired
		}
		return Result{State: State{Screen: ScreenView, StudentID: user.ID}}, nil
	case models.RoleNone:
		return Result{}, ErrForbidden
	default:
		return Result{}, ErrForbidden
	}
}

func back(user models.AuthUser) (Result, error) {
	switch user.Role {
	case models.RoleStaff:
		return Result{State: State{Screen: ScreenDashboard}}, nil
	case models.RoleSupport:
		return Result{State: State{Screen: ScreenSupport}}, nil
	case models.RoleStudent, models.RoleNone:
		return Result{State: Initial(), ClearSession: true}, nil
	default:
		return Result{State: Initial(), ClearSession: true}, nil
	}
}

func requireRole(have, want models.Role) error {
	if have != want {
		return ErrForbidden
	}
	return nil
}

func invalid(current State, action Action) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, current.Screen)
}
