package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Engine  EngineConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COMBOFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"COMBOFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COMBOFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COMBOFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COMBOFORGE_DB_DSN"`
	Driver string `envconfig:"COMBOFORGE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"COMBOFORGE_DB_HOST"`
	Port     int    `envconfig:"COMBOFORGE_DB_PORT" default:"5432"`
	User     string `envconfig:"COMBOFORGE_DB_USER"`
	Password string `envconfig:"COMBOFORGE_DB_PASSWORD"`
	Name     string `envconfig:"COMBOFORGE_DB_NAME"`
	SSLMode  string `envconfig:"COMBOFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COMBOFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COMBOFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COMBOFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COMBOFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"COMBOFORGE_DB_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"COMBOFORGE_DB_USE_SQLITE" default:"false"`
}

type RedisConfig struct {
	// URL is optional: when unset the slot-session store runs in process memory.
	URL          string        `envconfig:"COMBOFORGE_REDIS_URL"`
	Address      string        `envconfig:"COMBOFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"COMBOFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"COMBOFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COMBOFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COMBOFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COMBOFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COMBOFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COMBOFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
	SessionTTL   time.Duration `envconfig:"COMBOFORGE_REDIS_SESSION_TTL" default:"24h"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// PricingConfig carries the channel cost-model constants. Defaults mirror the
// tariffs the product team ships with; all of them are overridable per deploy.
type PricingConfig struct {
	PackagingFee      decimal.Decimal `envconfig:"COMBOFORGE_PRICING_PACKAGING_FEE" default:"3"`
	CommissionRate    decimal.Decimal `envconfig:"COMBOFORGE_PRICING_COMMISSION_RATE" default:"0.363"`
	TransportFee      decimal.Decimal `envconfig:"COMBOFORGE_PRICING_TRANSPORT_FEE" default:"200"`
	StaffBlockSize    int             `envconfig:"COMBOFORGE_PRICING_STAFF_BLOCK_SIZE" default:"25"`
	StaffBlockCost    decimal.Decimal `envconfig:"COMBOFORGE_PRICING_STAFF_BLOCK_COST" default:"150"`
	EquipmentPerGuest decimal.Decimal `envconfig:"COMBOFORGE_PRICING_EQUIPMENT_PER_GUEST" default:"5"`
}

type EngineConfig struct {
	// ResultCap bounds the ranked result set handed to presentation.
	ResultCap int `envconfig:"COMBOFORGE_ENGINE_RESULT_CAP" default:"100"`
	// MaxCombinations guards pathological Cartesian products. Zero keeps the
	// historical uncapped behavior.
	MaxCombinations int `envconfig:"COMBOFORGE_ENGINE_MAX_COMBINATIONS" default:"0"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.UseSQLite {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
