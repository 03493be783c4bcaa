package validation

import (
	"github.com/locgroup/internal/profile"
)

// Classify decides whether a profile counts as valid. The first applicable
// rule wins: a ban rejects, an explicit is_verified decides on its own,
// is_active/email_verified decide together, and no signal at all permits.
func Classify(p profile.Profile) Decision {
	if p.Truthy(KeyBanned) {
		return Decision{
			Valid:  false,
			Rule:   RuleBanned,
			Reason: "profile is banned",
		}
	}

	if p.Has(KeyVerified) {
		if p.Truthy(KeyVerified) {
			return Decision{Valid: true, Rule: RuleVerified, Reason: "profile is verified"}
		}
		return Decision{Valid: false, Rule: RuleVerified, Reason: "profile is explicitly unverified"}
	}

	if p.Has(KeyActive) || p.Has(KeyEmailVerified) {
		// absent is_active counts as active, absent email_verified as unverified
		active := !p.Has(KeyActive) || p.Truthy(KeyActive)
		emailVerified := p.Truthy(KeyEmailVerified)

		switch {
		case active && emailVerified:
			return Decision{Valid: true, Rule: RuleActiveEmail, Reason: "active with verified email"}
		case !active:
			return Decision{Valid: false, Rule: RuleActiveEmail, Reason: "profile is inactive"}
		default:
			return Decision{Valid: false, Rule: RuleActiveEmail, Reason: "email is not verified"}
		}
	}

	return Decision{Valid: true, Rule: RuleDefaultPermit, Reason: "no validity signals present"}
}

// IsValid is Classify reduced to its verdict
func IsValid(p profile.Profile) bool {
	return Classify(p).Valid
}
