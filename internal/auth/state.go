package auth

import (
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

// Session holds the authenticated identity. IsAuthenticated is true
// iff both the user and the token are present; NewSession is the only
// constructor so the invariant cannot drift.
type Session struct {
	CurrentUser     *datamodel.User `json:"current_user"`
	Token           string          `json:"-"`
	IsAuthenticated bool            `json:"is_authenticated"`
}

func NewSession(user *datamodel.User, token string) Session {
	return Session{
		CurrentUser:     user,
		Token:           token,
		IsAuthenticated: user != nil && token != "",
	}
}

// State is the auth slice: the session plus three independently
// tracked operations. A failed dashboard refresh never touches the
// login state and vice versa.
type State struct {
	Session   Session                                   `json:"session"`
	Login     request.Request[struct{}]                 `json:"login"`
	Dashboard request.Request[datamodel.DashboardStats] `json:"dashboard"`
	Profile   request.Request[datamodel.User]           `json:"profile"`
}

// Store is the slice access the auth service needs from the composed
// store. Reads and writes go through these methods only.
type Store interface {
	UpdateAuth(fn func(*State))
	AuthState() State
}
