package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty-compatible.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "MULTICART_APP_ENV"
	EnvPort      = "MULTICART_APP_PORT"
	EnvLogLevel  = "MULTICART_LOG_LEVEL"
	EnvDBDSN     = "MULTICART_DB_DSN"
	EnvDBHost    = "MULTICART_DB_HOST"
	EnvDBUser    = "MULTICART_DB_USER"
	EnvDBName    = "MULTICART_DB_NAME"
	EnvRedisURL  = "MULTICART_REDIS_URL"
	EnvJWTSecret = "MULTICART_JWT_SECRET"
	EnvJWTIssuer = "MULTICART_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
