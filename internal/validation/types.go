package validation

import "fmt"

// Rule identifies which validity rule produced a decision
type Rule string

const (
	RuleBanned        Rule = "banned"
	RuleVerified      Rule = "verified"
	RuleActiveEmail   Rule = "active_email"
	RuleDefaultPermit Rule = "default"
)

// Signal keys read from a profile
const (
	KeyBanned        = "is_banned"
	KeyVerified      = "is_verified"
	KeyActive        = "is_active"
	KeyEmailVerified = "email_verified"
)

// Decision is the outcome of classifying one profile
type Decision struct {
	Valid  bool   `json:"valid"`
	Rule   Rule   `json:"rule"`
	Reason string `json:"reason"`
}

func (d Decision) String() string {
	if d.Valid {
		return fmt.Sprintf("VALID (%s): %s", d.Rule, d.Reason)
	}
	return fmt.Sprintf("INVALID (%s): %s", d.Rule, d.Reason)
}
