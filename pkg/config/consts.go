package config

const (
	// EnvPrefix namespaces every environment variable this app reads.
	EnvPrefix = "LUNAKIDS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "LUNAKIDS_DB_DSN"
	EnvDBHost = "LUNAKIDS_DB_HOST"
	EnvDBUser = "LUNAKIDS_DB_USER"
	EnvDBName = "LUNAKIDS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
