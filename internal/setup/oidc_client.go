package setup

import (
	"context"
	"net/http"
	"net/url"

	"github.com/InterNutter/instants/internal/adapter/oidc"
	"github.com/InterNutter/instants/internal/config"
	"github.com/pkg/errors"
)

var getOIDCClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*oidc.Client, error) {
	callbackURL, err := getCallbackURL(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpClient := &http.Client{
		Timeout: conf.HTTP.Authn.OIDC.Timeout,
	}

	client, err := oidc.NewClient(ctx,
		oidc.WithIssuer(conf.HTTP.Authn.OIDC.Issuer),
		oidc.WithClient(conf.HTTP.Authn.OIDC.ClientID, conf.HTTP.Authn.OIDC.ClientSecret),
		oidc.WithCallbackURL(callbackURL),
		oidc.WithScopes(conf.HTTP.Authn.OIDC.Scopes...),
		oidc.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create oidc client")
	}

	return client, nil
})

// getCallbackURL returns the configured callback url or derives it from the
// base url, which must then be absolute.
func getCallbackURL(conf *config.Config) (string, error) {
	if conf.HTTP.Authn.OIDC.CallbackURL != "" {
		return conf.HTTP.Authn.OIDC.CallbackURL, nil
	}

	baseURL, err := url.Parse(conf.HTTP.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse base url '%s'", conf.HTTP.BaseURL)
	}

	if !baseURL.IsAbs() {
		return "", errors.Errorf("could not derive callback url from relative base url '%s'", conf.HTTP.BaseURL)
	}

	return baseURL.JoinPath("callback").String(), nil
}
