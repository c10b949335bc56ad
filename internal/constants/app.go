package constants

const (
	// AppName is used for the keyring service name and the Postgres search_path.
	AppName = "focuslog"

	// DefaultKeyringUser is the keyring account under which the database
	// connection string is stored.
	DefaultKeyringUser = "default"

	// DateFormat is the canonical day-key layout (YYYY-MM-DD).
	DateFormat = "2006-01-02"
)
