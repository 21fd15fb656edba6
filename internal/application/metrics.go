package application

import "expvar"

// Published under /api/debug/vars when debug metrics are enabled.
var authStats = expvar.NewMap("auth")

const (
	statRegister       = "register_success"
	statLoginSuccess   = "login_success"
	statLoginFailure   = "login_failure"
	statAccountLocked  = "account_locked"
	statRefreshSuccess = "refresh_success"
	statLogout         = "logout"
)
