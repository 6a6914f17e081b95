package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test path
	DefaultTestPath = "."
	// DefaultOutputJSONFile is the default plan file name
	DefaultOutputJSONFile = "tsplit-plan.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of files parsed concurrently
	DefaultProcessors = 4
	// DefaultNodes is the default node count
	DefaultNodes = "1"
	// DefaultNodeNumber is the default node id
	DefaultNodeNumber = "1"
	// DefaultAlgorithm is the default placement algorithm
	DefaultAlgorithm = "hash"
	// DefaultLogLevel is the default zerolog level
	DefaultLogLevel = "info"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	"storage",
}
