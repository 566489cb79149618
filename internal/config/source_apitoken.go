package config

import (
	"github.com/pkg/errors"
)

// SourceAPITokenConfig is a configuration for the api token data set.
type SourceAPITokenConfig struct {
	URL                 string            `env:"APITOKEN__URL,required"`
	Method              string            `env:"APITOKEN__METHOD" envDefault:"GET"`
	Data                string            `env:"APITOKEN__DATA"`
	Params              map[string]string `env:"APITOKEN__PARAMS" envKeyValSeparator:"="`
	AuthUsername        string            `env:"APITOKEN__AUTH_USERNAME"`
	AuthPassword        string            `env:"APITOKEN__AUTH_PASSWORD"`
	Timeout             int               `env:"APITOKEN__TIMEOUT" envDefault:"60"`
	Credentials         map[string]string `env:"APITOKEN__CREDENTIALS" envKeyValSeparator:"="`
	CredentialsFilePath string            `env:"APITOKEN__CREDENTIALS_FILE_PATH,file"`
	TLSCACertFilePath   string            `env:"APITOKEN__TLS_CA_CERT_FILE_PATH,file"`
	TLSCertFilePath     string            `env:"APITOKEN__TLS_CERT_FILE_PATH,file"`
	TLSKeyFilePath      string            `env:"APITOKEN__TLS_KEY_FILE_PATH,file"`
	OutputJSONPath      string            `env:"APITOKEN__OUTPUT_JSONPATH"`
}

// SourceAPIToken parses the environment variables and returns the api token configuration.
// Credentials read from the credentials file override the inline ones.
func SourceAPIToken(envs ...string) (*SourceAPITokenConfig, error) {
	cfg, err := parse[SourceAPITokenConfig](envs...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if cfg.CredentialsFilePath != "" {
		fromFile, err := parseKeyValueLines(cfg.CredentialsFilePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read credentials file")
		}
		cfg.Credentials = mergeMaps(cfg.Credentials, fromFile)
	}
	return cfg, nil
}
