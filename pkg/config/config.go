package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Gemini        GeminiConfig
	Affiliates    AffiliatesConfig
	Pricing       PricingConfig
	Upload        UploadConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"SMARTSPEND_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTSPEND_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"SMARTSPEND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTSPEND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMARTSPEND_DB_DSN"`
	Driver string `envconfig:"SMARTSPEND_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMARTSPEND_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTSPEND_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTSPEND_DB_USER"`
	LegacyPassword string `envconfig:"SMARTSPEND_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTSPEND_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTSPEND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTSPEND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTSPEND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTSPEND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTSPEND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSPEND_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTSPEND_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSPEND_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSPEND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSPEND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSPEND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSPEND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSPEND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSPEND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SMARTSPEND_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SMARTSPEND_JWT_ISSUER" default:"smartspend"`
	ExpirationMinutes      int    `envconfig:"SMARTSPEND_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"SMARTSPEND_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SMARTSPEND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SMARTSPEND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SMARTSPEND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SMARTSPEND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SMARTSPEND_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SMARTSPEND_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	// AllowedOrigins is comma separated; envconfig splits on commas.
	AllowedOrigins []string `envconfig:"SMARTSPEND_CORS_ORIGINS" default:"http://localhost:3000"`
}

type GeminiConfig struct {
	APIKey  string        `envconfig:"SMARTSPEND_GEMINI_API_KEY"`
	Model   string        `envconfig:"SMARTSPEND_GEMINI_MODEL" default:"gemini-flash-latest"`
	Timeout time.Duration `envconfig:"SMARTSPEND_GEMINI_TIMEOUT" default:"30s"`
}

type AffiliatesConfig struct {
	AmazonTag  string `envconfig:"SMARTSPEND_AMAZON_AFFILIATE_TAG"`
	FlipkartID string `envconfig:"SMARTSPEND_FLIPKART_AFFILIATE_ID"`
	MeeshoID   string `envconfig:"SMARTSPEND_MEESHO_AFFILIATE_ID"`
}

type PricingConfig struct {
	QuoteCacheTTL time.Duration `envconfig:"SMARTSPEND_PRICING_QUOTE_CACHE_TTL" default:"1h"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"SMARTSPEND_MAX_UPLOAD_MB" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SMARTSPEND_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SMARTSPEND_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
