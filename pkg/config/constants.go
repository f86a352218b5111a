package config

const (
	EnvPrefix = "BAKERY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "BAKERY_APP_ENV"
	EnvPort       = "BAKERY_APP_PORT"
	EnvDBDSN      = "BAKERY_DB_DSN"
	EnvDBHost     = "BAKERY_DB_HOST"
	EnvDBPort     = "BAKERY_DB_PORT"
	EnvDBUser     = "BAKERY_DB_USER"
	EnvDBPassword = "BAKERY_DB_PASSWORD"
	EnvDBName     = "BAKERY_DB_NAME"
	EnvUseSQLite  = "BAKERY_USE_SQLITE"
	EnvSQLitePath = "BAKERY_SQLITE_PATH"
	EnvRedisURL   = "BAKERY_REDIS_URL"
	EnvJWTSecret  = "BAKERY_JWT_SECRET"
	EnvJWTIssuer  = "BAKERY_JWT_ISSUER"
	EnvJWTExpMins = "BAKERY_JWT_EXPIRATION_MINUTES"

	EnvSagaCompensationTimeout = "BAKERY_SAGA_COMPENSATION_TIMEOUT"
	EnvNotifyChannelPrefix     = "BAKERY_NOTIFY_CHANNEL_PREFIX"
	EnvFrontendOrigins         = "BAKERY_FRONTEND_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
