package constants

// Directory and file names used for git-eq's own data.
const (
	// GitEqHome is the hidden directory in the user's home where git-eq keeps
	// its config and logs. GITEQ_HOME overrides it.
	GitEqHome = ".git-eq"

	// LogsDir is the directory under GitEqHome where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the rotating log file, ~/.git-eq/logs/git-eq.log.
	CLILogFileName = "git-eq.log"

	// GlobalConfigName is the config file under GitEqHome.
	GlobalConfigName = "config.yaml"

	// EnvPrefix prefixes every environment variable viper reads (GITEQ_*).
	EnvPrefix = "GITEQ"

	// HomeEnvVar overrides the git-eq home directory.
	HomeEnvVar = "GITEQ_HOME"
)

// Log file rotation settings.
const (
	// LogMaxSizeMB is the size at which the log file rotates.
	LogMaxSizeMB = 5

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the age after which rotated files are removed.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
