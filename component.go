package main

import (
	"log/slog"

	"github.com/goto/optimus-apitoken/ext/apitoken"
	"github.com/goto/optimus-apitoken/internal/auth"
	"github.com/goto/optimus-apitoken/internal/compiler"
	"github.com/goto/optimus-apitoken/internal/config"
	"github.com/pkg/errors"
)

// getDataSet renders the [[ ]] templates of url, data and params against
// env and returns the api token data set. Credentials are never rendered.
func getDataSet(l *slog.Logger, cfg *config.SourceAPITokenConfig, env map[string]string) (*apitoken.APITokenDataSet, error) {
	url, err := compiler.Render("apitoken_url", cfg.URL, env)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	data, err := compiler.Render("apitoken_data", cfg.Data, env)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	params, err := compiler.RenderMap("apitoken_params", cfg.Params, env)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	spec := apitoken.RequestSpec{
		URL:     url,
		Method:  cfg.Method,
		Params:  params,
		Timeout: cfg.Timeout,
	}
	if data != "" {
		spec.Data = data
	}
	if cfg.AuthUsername != "" || cfg.AuthPassword != "" {
		spec.Auth = apitoken.BasicAuth{Username: cfg.AuthUsername, Password: cfg.AuthPassword}
	}

	var opts []apitoken.Option
	if cfg.TLSCACertFilePath != "" || cfg.TLSCertFilePath != "" || cfg.TLSKeyFilePath != "" {
		tlsCfg, err := auth.NewTLSConfig(cfg.TLSCACertFilePath, cfg.TLSCertFilePath, cfg.TLSKeyFilePath)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		opts = append(opts, apitoken.WithTLSConfig(tlsCfg))
	}

	return apitoken.NewDataSet(l, spec, cfg.Credentials, opts...)
}
