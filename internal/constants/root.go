package constants

const (
	AppName            = "energyflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/energyflow/energyflow.db"
	DefaultAppConfig   = "~/.config/energyflow/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Persisted record keys
	RecordEnergyProfile = "energyProfile"
	RecordTaskBoard     = "energyflow_tasks"

	// Environment
	EnvDBConnection = "ENERGYFLOW_DB_CONNECTION"
	KeyringDSN      = "keyring"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "energyflow-"
	BackupFileSuffix = ".db"

	// Server constants
	ServerLockfileName = "energyflow-server.lock"
	DefaultServerAddr  = "127.0.0.1:8787"
	DefaultRateLimit   = 10.0
	DefaultRateBurst   = 20
	DefaultCleanupSpec = "0 4 * * *"
)
