package config

// EnvPrefix namespaces every SmartSpend environment variable.
const EnvPrefix = "SMARTSPEND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SMARTSPEND_DB_DSN"
	EnvDBHost = "SMARTSPEND_DB_HOST"
	EnvDBUser = "SMARTSPEND_DB_USER"
	EnvDBName = "SMARTSPEND_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
