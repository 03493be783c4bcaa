package engine

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/locgroup/internal/debug"
	"github.com/locgroup/internal/location"
	"github.com/locgroup/internal/match"
	"github.com/locgroup/internal/profile"
	"github.com/locgroup/internal/validation"
)

// UsersKey is the record field holding matched identifiers
const UsersKey = "users"

// Record is one canonical location and the identifiers of the profiles
// grouped under it, in input order. Identifiers are not deduplicated.
type Record struct {
	Location location.Descriptor
	Users    []interface{}
}

// MarshalJSON flattens the location fields next to the users list
func (r Record) MarshalJSON() ([]byte, error) {
	out := r.Location.Map()
	users := r.Users
	if users == nil {
		users = []interface{}{}
	}
	out[UsersKey] = users
	return json.Marshal(out)
}

// UnmarshalJSON reads a flattened record
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Users []interface{} `json:"users"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var d location.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	r.Location = d
	r.Users = raw.Users
	return nil
}

// Options controls a grouping run
type Options struct {
	// FilterValid keeps only profiles the validity classifier accepts and
	// enables the raw-input fallback when nothing survives.
	FilterValid bool
	// LookupID names one profile to report on; it does not affect the result.
	LookupID string
}

// Result is the output of a grouping run. When Fallback is set the run
// produced no records and Profiles holds a copy of the input instead.
type Result struct {
	Records  []Record
	Fallback bool
	Profiles []profile.Profile
}

// Artifact returns the value to persist for this result
func (r Result) Artifact() interface{} {
	if r.Fallback {
		return r.Profiles
	}
	if r.Records == nil {
		return []Record{}
	}
	return r.Records
}

// Engine groups profiles by canonical location
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: debug.OrNop(logger)}
}

// Locations returns the unique canonical locations of profiles in
// first-seen order
func (e *Engine) Locations(profiles []profile.Profile) []location.Descriptor {
	defer debug.Timing(e.logger, "locations")()

	unique := location.Unique(profiles)
	e.logger.Debug("locations extracted",
		zap.Int("profiles", len(profiles)),
		zap.Int("unique", len(unique)))
	return unique
}

// Group builds one record per unique location that at least one profile
// matches. Every location is checked against every profile.
func (e *Engine) Group(profiles []profile.Profile, opts Options) Result {
	defer debug.Timing(e.logger, "group")()

	if opts.LookupID != "" {
		e.reportLookup(profiles, opts.LookupID)
	}

	var decisions []validation.Decision
	if opts.FilterValid {
		decisions = make([]validation.Decision, len(profiles))
		for i, p := range profiles {
			decisions[i] = validation.Classify(p)
		}
	}

	locations := location.Unique(profiles)
	records := make([]Record, 0, len(locations))
	for _, loc := range locations {
		var users []interface{}
		for i, p := range profiles {
			if !match.Matches(p, loc) {
				continue
			}
			if opts.FilterValid && !decisions[i].Valid {
				continue
			}
			users = append(users, p.Identifier())
		}
		if len(users) == 0 {
			e.logger.Debug("location dropped, no matching profiles", zap.Stringer("location", loc))
			continue
		}
		records = append(records, Record{Location: loc, Users: users})
	}

	e.logger.Debug("grouping complete",
		zap.Int("profiles", len(profiles)),
		zap.Int("locations", len(locations)),
		zap.Int("records", len(records)),
		zap.Bool("filter_valid", opts.FilterValid))

	if opts.FilterValid && len(records) == 0 {
		e.logger.Warn("validity grouping produced no records, returning input profiles unchanged",
			zap.Int("profiles", len(profiles)))
		return Result{Fallback: true, Profiles: copyProfiles(profiles)}
	}
	return Result{Records: records}
}

// Valid is Group with validity filtering enabled
func (e *Engine) Valid(profiles []profile.Profile, lookupID string) Result {
	return e.Group(profiles, Options{FilterValid: true, LookupID: lookupID})
}

func (e *Engine) reportLookup(profiles []profile.Profile, id string) {
	p, ok := profile.Find(profiles, id)
	if !ok {
		e.logger.Info("lookup profile not found", zap.String("id", id), zap.Int("profiles", len(profiles)))
		return
	}
	decision := validation.Classify(p)
	e.logger.Info("lookup profile",
		zap.String("id", id),
		zap.Stringer("location", location.Extract(p)),
		zap.Bool("valid", decision.Valid),
		zap.String("rule", string(decision.Rule)),
		zap.String("reason", decision.Reason))
}

func copyProfiles(profiles []profile.Profile) []profile.Profile {
	out := make([]profile.Profile, len(profiles))
	copy(out, profiles)
	return out
}
