package site

import (
	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/server"
	"github.com/sagetools/sagekit/core/session"
	"github.com/sagetools/sagekit/core/sessiontransport"
	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/middleware"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
)

// Config is the application configuration. Store specific settings are
// loaded separately once the driver is known, so an unused backend never
// fails on its required variables.
type Config struct {
	Server        server.Config
	Cookie        cookie.Config
	Locale        locale.EnvConfig
	Slug          slugger.Config
	Maintenance   middleware.MaintenanceMode
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	CSRF          middleware.CSRFEnvConfig

	AppName  string `env:"APP_NAME" envDefault:"sagekit"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// LocaleFile points to a TOML file that replaces the LOCALE_* settings.
	LocaleFile  string `env:"LOCALE_CONFIG_FILE"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	Collection  string `env:"SLUG_COLLECTION" envDefault:"articles"`
}

func (c Config) localeConfig() (locale.Config, error) {
	if c.LocaleFile != "" {
		return locale.LoadTOML(c.LocaleFile)
	}
	return c.Locale.Config(), nil
}
