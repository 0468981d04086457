package config

const (
	// EnvPrefix is the envconfig prefix shared by every setting.
	EnvPrefix = "quotedesk"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv          = "QUOTEDESK_APP_ENV"
	EnvPort            = "QUOTEDESK_APP_PORT"
	EnvDBDriver        = "QUOTEDESK_DB_DRIVER"
	EnvDBDSN           = "QUOTEDESK_DB_DSN"
	EnvDBPath          = "QUOTEDESK_DB_PATH"
	EnvRedisURL        = "QUOTEDESK_REDIS_URL"
	EnvJWTSecret       = "QUOTEDESK_JWT_SECRET"
	EnvJWTIssuer       = "QUOTEDESK_JWT_ISSUER"
	EnvStaffSecretHash = "QUOTEDESK_STAFF_SECRET_HASH"
	EnvRemoteBaseURL   = "QUOTEDESK_REMOTE_BASE_URL"
	EnvCatalogURL      = "QUOTEDESK_CATALOG_URL"
	EnvRendererBaseURL = "QUOTEDESK_RENDERER_BASE_URL"
)
