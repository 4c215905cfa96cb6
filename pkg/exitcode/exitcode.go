// Package exitcode provides standardized exit codes for svdregress
package exitcode

// Exit codes for the svdregress CLI
const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2 // no catalog configured, bad flags or config file
	ValidationError   = 3 // catalog content or coverage rejected
	FileSystemError   = 4 // catalog or output file not accessible
	UnsupportedFormat = 8
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}
