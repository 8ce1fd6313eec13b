package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Specific sentinels come before their parents because lookup stops at the
// first errors.Is() match.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrNoRemote,
		info: ErrorInfo{
			Message: "The current branch has no remote configured.",
			Action:  "Run 'git push -u <remote> <branch>' once, or 'git config branch.<branch>.remote origin'.",
		},
	},
	{
		err: ErrNoIdentity,
		info: ErrorInfo{
			Message: "No git user email is configured.",
			Action:  "Run 'git config --global user.email you@example.com'.",
		},
	},
	{
		err: ErrConfiguration,
		info: ErrorInfo{
			Message: "Required git configuration is missing.",
			Action:  "Check 'git config --list' for the remote and user settings.",
		},
	},
	{
		err: ErrProcess,
		info: ErrorInfo{
			Message: "Could not run git.",
			Action:  "Ensure git is installed and on your PATH, or set GITEQ_GIT_BINARY.",
		},
	},
	{
		err: ErrEncoding,
		info: ErrorInfo{
			Message: "Git printed output that is not valid UTF-8.",
			Action:  "Check branch names and config values for unusual characters.",
		},
	},
	{
		err: ErrClock,
		info: ErrorInfo{
			Message: "The system clock is set before 1970.",
			Action:  "Fix the system date and time, then retry.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The git-eq configuration is invalid.",
			Action:  "Check ~/.git-eq/config.yaml and GITEQ_* environment variables.",
		},
	},
	{
		err: ErrUsage,
		info: ErrorInfo{
			Message: "The command line could not be parsed.",
			Action:  "Run 'git eq --help'. To use a message that starts with '-', put it after --: git eq -- \"-wip\"",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unsupported output format.",
			Action:  "Use --output text or --output json.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
