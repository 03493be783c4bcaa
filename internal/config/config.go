package config

import "path/filepath"

// Default artifact locations
var (
	DefaultInputPath     = filepath.Join("data", "users.json")
	DefaultLocationsPath = filepath.Join("filter_data", "location_keys.json")
	DefaultGroupsPath    = filepath.Join("filter_data", "location_groups.json")
	DefaultValidPath     = filepath.Join("filter_data", "location_isvalid.json")
)

// Config holds the explicit settings handed to the pipeline and generator
type Config struct {
	InputPath     string
	LocationsPath string
	GroupsPath    string
	ValidPath     string
	Force         bool
	LookupID      string
	Debug         bool

	GenerateCount int
	GenerateSeed  int64
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		InputPath:     DefaultInputPath,
		LocationsPath: DefaultLocationsPath,
		GroupsPath:    DefaultGroupsPath,
		ValidPath:     DefaultValidPath,
		GenerateCount: 1000,
		GenerateSeed:  42,
	}
}

// Load returns Default overridden by LOCGROUP_* environment variables
func Load() Config {
	def := Default()
	return Config{
		InputPath:     GetEnv("LOCGROUP_INPUT", def.InputPath),
		LocationsPath: GetEnv("LOCGROUP_LOCATIONS_OUT", def.LocationsPath),
		GroupsPath:    GetEnv("LOCGROUP_GROUPS_OUT", def.GroupsPath),
		ValidPath:     GetEnv("LOCGROUP_VALID_OUT", def.ValidPath),
		Force:         GetEnvBool("LOCGROUP_FORCE", def.Force),
		LookupID:      GetEnv("LOCGROUP_LOOKUP_ID", def.LookupID),
		Debug:         GetEnvBool("LOCGROUP_DEBUG", def.Debug),
		GenerateCount: GetEnvInt("LOCGROUP_GENERATE_COUNT", def.GenerateCount),
		GenerateSeed:  GetEnvInt64("LOCGROUP_GENERATE_SEED", def.GenerateSeed),
	}
}
