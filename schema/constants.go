package schema

// Custom string types for type safety.
type (
	// Tool represents a Python package manager under evaluation.
	Tool string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All tools supported.
const (
	MakeTool     Tool = "make" // plain pip driven by a Makefile
	PoetryTool   Tool = "poetry"
	PiptoolsTool Tool = "piptools"
	UvTool       Tool = "uv"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Unified score weights. Speed and reproducibility dominate because they
// are the metrics teams feel daily in CI; DX is a tiebreaker.
const (
	SpeedWeight = 0.4
	ReproWeight = 0.4
	DXWeight    = 0.2
)

// AllTools returns all supported tools in canonical display order.
var AllTools = []Tool{MakeTool, PoetryTool, PiptoolsTool, UvTool}

// ValidTools lists all valid tools.
var ValidTools = map[Tool]struct{}{
	MakeTool:     {},
	PoetryTool:   {},
	PiptoolsTool: {},
	UvTool:       {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
