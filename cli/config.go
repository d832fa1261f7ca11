package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lukehollenback/fcsapi/auth"
	"github.com/lukehollenback/fcsapi/constants"
)

const (
	EnvPrefix      = "FCS"
	ConfigFileName = "fcsapi"

	ConfigFlag      = "config"
	AccessKeyFlag   = "access-key"
	PublicKeyFlag   = "public-key"
	TokenFlag       = "token"
	TokenExpiryFlag = "token-expiry"
	AuthMethodFlag  = "auth-method"
	BaseURLFlag     = "base-url"
	TimeoutFlag     = "timeout"
	LogLevelFlag    = "log-level"
)

// Config is the fully resolved CLI configuration. Values come from flags, then FCS_ environment
// variables (FCS_ACCESS_KEY, FCS_TOKEN_EXPIRY, ...), then an optional fcsapi.{yaml,toml,json} file.
type Config struct {
	AccessKey   string
	PublicKey   string
	Token       string
	TokenExpiry int64
	AuthMethod  string
	BaseURL     string
	Timeout     time.Duration
	LogLevel    string
}

func bindFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFlag, "", "Path to a config file (default: ./fcsapi.{yaml,toml,json} if present)")
	flags.String(AccessKeyFlag, "", "Private API access key")
	flags.String(PublicKeyFlag, "", "Public key used for token authentication")
	flags.String(TokenFlag, "", "HMAC token minted by a backend")
	flags.Int64(TokenExpiryFlag, 0, "Unix expiry of the token")
	flags.String(AuthMethodFlag, "", "Authentication method: token, access_key, or ip_whitelist")
	flags.String(BaseURLFlag, constants.BaseURL, "API root URL")
	flags.Duration(TimeoutFlag, constants.DefaultTimeout, "Request timeout")
	flags.String(LogLevelFlag, logrus.WarnLevel.String(), "Log level")
}

// readConfig resolves the configuration from v after the flags in flags have been parsed.
func readConfig(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(ConfigFlag); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")

		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		AccessKey:   v.GetString(AccessKeyFlag),
		PublicKey:   v.GetString(PublicKeyFlag),
		Token:       v.GetString(TokenFlag),
		TokenExpiry: v.GetInt64(TokenExpiryFlag),
		AuthMethod:  v.GetString(AuthMethodFlag),
		BaseURL:     v.GetString(BaseURLFlag),
		Timeout:     v.GetDuration(TimeoutFlag),
		LogLevel:    v.GetString(LogLevelFlag),
	}, nil
}

// Method resolves the authentication method. With no explicit method, a lone access key selects
// access key authentication and anything else selects token authentication.
func (o *Config) Method() (auth.Method, error) {
	if o.AuthMethod != "" {
		return auth.ParseMethod(o.AuthMethod)
	}

	if o.AccessKey != "" && o.Token == "" {
		return auth.MethodAccessKey, nil
	}

	return auth.MethodToken, nil
}

func (o *Config) Auth() (*auth.Config, error) {
	method, err := o.Method()
	if err != nil {
		return nil, err
	}

	return auth.NewConfig(auth.Options{
		Method:      method,
		AccessKey:   o.AccessKey,
		PublicKey:   o.PublicKey,
		Token:       o.Token,
		TokenExpiry: o.TokenExpiry,
		Timeout:     o.Timeout,
	}), nil
}
