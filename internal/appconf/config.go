package appconf

// Environment represents the runtime environment of the application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// Config holds the server-level application configuration.
type Config struct {
	Port      int
	Env       Environment
	RateLimit int
	Verbose   bool

	// DataPath is the directory holding the persisted schedule artifacts
	// produced by the offline build.
	DataPath string

	// SearchDBPath is the SQLite autocomplete database. Optional; the
	// /api/stops and /api/cities endpoints fall back to empty results
	// when absent.
	SearchDBPath string

	// TarifsPath is the flat tariff index CSV. Optional.
	TarifsPath string
}

// EnvFlagToEnvironment converts an environment flag value to an Environment.
// Unknown values map to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}
