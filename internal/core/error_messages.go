package core

// error_messages.go maps technical failures to short operator-facing messages
// with a code for reference.
//
// Only I/O and setup failures reach this mapping. Bad values, duplicates and
// out-of-range BMIs are pipeline decisions and never become errors.
//
//	FILE001 - Source missing: the input file does not exist
//	FILE002 - Unsupported format: the file extension is not a known format
//	FILE003 - Empty source: the file holds no header or no rows
//	FILE004 - Invalid CSV: the delimited text could not be parsed
//	FILE005 - Not writable: the destination could not be created
//	FILE006 - Missing columns: a required survey column is absent
//	EXP001  - Export unavailable: binary export failed; CSV output is unaffected
//	DB004   - Connection refused: the optional database sink is unreachable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the adapters and commands.
var (
	ErrSourceNotFound    = errors.New("source not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptySource       = errors.New("empty source")
	ErrNotWritable       = errors.New("destination not writable")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrExportUnavailable = errors.New("export unavailable")
)

// UserMessage contains a user-friendly error message with an action and code.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Reference code
}

var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrSourceNotFound, UserMessage{"Input file not found", "Check the configured source path", "FILE001"}},
	{ErrUnsupportedFormat, UserMessage{"Input format is not supported", "Use .csv, .dta or .sas7bdat", "FILE002"}},
	{ErrEmptySource, UserMessage{"Input file has no data", "Provide a file with a header and data rows", "FILE003"}},
	{ErrNotWritable, UserMessage{"Output could not be written", "Check permissions on the output directory", "FILE005"}},
	{ErrMissingColumns, UserMessage{"Required survey column is missing", "Check the input headers against the survey schema", "FILE006"}},
	{ErrExportUnavailable, UserMessage{"Binary export failed", "The CSV output is still available", "EXP001"}},
}

var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"no such file or directory", UserMessage{"Input file not found", "Check the configured source path", "FILE001"}},
	{"parse error on line", UserMessage{"Input is not valid CSV", "Ensure the file is comma-separated with quoted text", "FILE004"}},
	{"wrong number of fields", UserMessage{"Input is not valid CSV", "Ensure every row has the same number of columns", "FILE004"}},
	{"permission denied", UserMessage{"Output could not be written", "Check permissions on the output directory", "FILE005"}},
	{"connection refused", UserMessage{"Unable to connect to database", "Check DATABASE_URL or unset it to skip the sink", "DB004"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Re-run with LOG_LEVEL=debug for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Sentinels are matched with errors.Is, then the error text is matched against
// known patterns. A nil error yields the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders MapError as one line.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
