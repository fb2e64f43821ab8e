package config

const (
	EnvPrefix = "adorzia"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv    = "ADORZIA_APP_ENV"
	EnvPort      = "ADORZIA_APP_PORT"
	EnvDBDSN     = "ADORZIA_DB_DSN"
	EnvDBHost    = "ADORZIA_DB_HOST"
	EnvDBUser    = "ADORZIA_DB_USER"
	EnvDBName    = "ADORZIA_DB_NAME"
	EnvRedisURL  = "ADORZIA_REDIS_URL"
	EnvJWTSecret = "ADORZIA_JWT_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
