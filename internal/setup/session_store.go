package setup

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/crypto"
	"github.com/InterNutter/instants/internal/session"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

var getSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*session.Store, error) {
	keyPairs := make([][]byte, 0)
	if len(conf.HTTP.Session.Keys) == 0 {
		key, err := crypto.RandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		slog.WarnContext(ctx, "no session key configured, sessions will not survive a restart")

		keyPairs = append(keyPairs, key, nil)
	} else {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k), nil)
		}
	}

	if err := os.MkdirAll(conf.HTTP.Session.Dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "could not create session directory '%s'", conf.HTTP.Session.Dir)
	}

	sessionStore := sessions.NewFilesystemStore(conf.HTTP.Session.Dir, keyPairs...)

	// Claims stored with the identity may exceed the default 4096 bytes
	sessionStore.MaxLength(0)

	sessionStore.MaxAge(int(conf.HTTP.Session.Cookie.MaxAge.Seconds()))
	sessionStore.Options.Path = conf.HTTP.Session.Cookie.Path
	sessionStore.Options.HttpOnly = conf.HTTP.Session.Cookie.HTTPOnly
	sessionStore.Options.Secure = conf.HTTP.Session.Cookie.Secure
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return session.NewStore(sessionStore, conf.HTTP.Session.Cookie.Name), nil
})
