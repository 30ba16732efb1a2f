// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"maqola/platform/pkg/security"
	"maqola/platform/pkg/util"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

var (
	configPath = pflag.String("config", "", "Path to a config.toml file")
	deleteUser = pflag.String("delete-user", "", "Deletes the account with this email together with its publications, then exits")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validHashes    = []string{security.HashBcrypt, security.HashArgon2id}

	// ErrNoSecret is returned when no JWT secret is configured. The caller
	// decides what to do, main prints a freshly generated one and exits.
	ErrNoSecret = errors.New("no jwt.secret provided")
)

// Config is built once by Setup and never modified afterwards. Pass it
// around by pointer, don't copy it into globals.
type Config struct {
	LogLevel string

	Port                  int
	Domain                string
	SSLEnabled            bool
	SSLCertificatePath    string
	SSLCertificateKeyPath string
	CORSOrigins           []string
	DatabaseURL           string
	JWTSecret             string
	JWTAlgorithm          string
	SessionTTL            time.Duration
	PasswordHash          string
	BcryptCost            int
	DefaultCategory       string
	DeleteUserEmail       string
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GenSecret returns a random secret suitable for jwt.secret
func GenSecret() string {
	s, err := util.GenerateToken(64)
	if err != nil {
		panic(err)
	}

	return s
}

// Setup parses the command line, reads config.toml (if present) and the
// environment, validates everything and returns the result. Function will
// return an error if something is critically wrong and the application
// can't run because of that.
func Setup() (*Config, error) {
	if !pflag.Parsed() {
		pflag.Parse()
	}

	return load(v.New(), *configPath, *deleteUser)
}

func load(vp *v.Viper, path, deleteEmail string) (*Config, error) {
	if path != "" {
		vp.SetConfigFile(path)
	} else {
		vp.SetConfigName("config")
		vp.SetConfigType("toml")
		vp.AddConfigPath(".")
	}

	vp.AutomaticEnv()

	//
	// ENVS
	//
	vp.BindEnv("app.log_level", "APP_LOG_LEVEL")

	vp.BindEnv("host.port", "HOST_PORT")
	vp.BindEnv("host.domain", "HOST_DOMAIN")
	vp.BindEnv("host.cors", "HOST_CORS")

	vp.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	vp.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	vp.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	vp.BindEnv("db.url", "DB_URL")

	vp.BindEnv("jwt.secret", "JWT_SECRET")
	vp.BindEnv("jwt.algorithm", "JWT_ALGORITHM")
	vp.BindEnv("jwt.ttl", "JWT_TTL")

	vp.BindEnv("security.password_hash", "SECURITY_PASSWORD_HASH")
	vp.BindEnv("security.bcrypt_cost", "SECURITY_BCRYPT_COST")

	vp.BindEnv("publication.default_category", "PUBLICATION_DEFAULT_CATEGORY")

	//
	// Defaults
	//
	vp.SetDefault("app.log_level", "info")

	vp.SetDefault("host.port", 8080)
	vp.SetDefault("host.domain", "")
	vp.SetDefault("host.cors", []string{})
	vp.SetDefault("host.ssl.enabled", false)

	vp.SetDefault("db.url", "sqlite:maqola.db")

	vp.SetDefault("jwt.algorithm", "HS256")
	vp.SetDefault("jwt.ttl", security.DefaultSessionTTL)

	vp.SetDefault("security.password_hash", security.HashBcrypt)
	vp.SetDefault("security.bcrypt_cost", bcrypt.DefaultCost)

	vp.SetDefault("publication.default_category", "Education")

	if err := vp.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		// An explicitly requested file has to exist, the default one is optional
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	c := &Config{
		LogLevel:              vp.GetString("app.log_level"),
		Port:                  vp.GetInt("host.port"),
		Domain:                vp.GetString("host.domain"),
		SSLEnabled:            vp.GetBool("host.ssl.enabled"),
		SSLCertificatePath:    vp.GetString("host.ssl.certificate_path"),
		SSLCertificateKeyPath: vp.GetString("host.ssl.certificate_key_path"),
		CORSOrigins:           splitList(vp.GetStringSlice("host.cors")),
		DatabaseURL:           strings.TrimSpace(vp.GetString("db.url")),
		JWTSecret:             vp.GetString("jwt.secret"),
		JWTAlgorithm:          strings.ToUpper(vp.GetString("jwt.algorithm")),
		SessionTTL:            vp.GetDuration("jwt.ttl"),
		PasswordHash:          strings.ToLower(vp.GetString("security.password_hash")),
		BcryptCost:            vp.GetInt("security.bcrypt_cost"),
		DefaultCategory:       strings.TrimSpace(vp.GetString("publication.default_category")),
		DeleteUserEmail:       deleteEmail,
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("invalid port provided")
	}

	if c.SSLEnabled {
		if c.SSLCertificatePath == "" {
			return errors.New("no ssl certificate path provided")
		}

		if c.SSLCertificateKeyPath == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if c.DatabaseURL == "" {
		return errors.New("no db.url provided")
	}

	if c.JWTSecret == "" {
		return ErrNoSecret
	}

	if !slices.Contains(security.SupportedSigningAlgorithms, c.JWTAlgorithm) {
		return fmt.Errorf("jwt.algorithm must be one of %s", strings.Join(security.SupportedSigningAlgorithms, ", "))
	}

	if c.SessionTTL <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	if !slices.Contains(validHashes, c.PasswordHash) {
		return fmt.Errorf("security.password_hash must be one of %s", strings.Join(validHashes, ", "))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.DefaultCategory == "" {
		return errors.New("publication.default_category can't be empty")
	}

	return nil
}

// Env vars come in as a single comma separated value
func splitList(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// PrintSecretHint prints a freshly generated secret for the operator to
// paste into their config. The process must not start with a made up key.
func PrintSecretHint() {
	fmt.Fprintln(os.Stderr, "WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable (JWT_SECRET) or in the config.toml file.\nYour random JWT secret:\n\n"+GenSecret()+"\n\nPaste it into your config.toml file.")
}
