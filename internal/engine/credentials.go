package engine

import (
	"log/slog"

	"github.com/tartampluch/go-vcf2csv/internal/config"
	"github.com/zalando/go-keyring"
)

// LookupPassword returns the password stored in the OS keyring for user.
// A missing entry or an unavailable keyring yields "" so that anonymous
// or token-in-URL sources keep working.
func LookupPassword(user string) string {
	if user == "" {
		return ""
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return pass
}
