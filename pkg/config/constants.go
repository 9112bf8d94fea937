package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// QUICKLINK_-prefixed names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "QUICKLINK_DB_DSN"
	EnvDBHost = "QUICKLINK_DB_HOST"
	EnvDBUser = "QUICKLINK_DB_USER"
	EnvDBName = "QUICKLINK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
