package config

// EnvPrefix is passed to envconfig; the explicit envconfig tags on each field
// already carry the full name, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "COMBOFORGE_DB_DSN"
	EnvDBHost = "COMBOFORGE_DB_HOST"
	EnvDBUser = "COMBOFORGE_DB_USER"
	EnvDBName = "COMBOFORGE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
