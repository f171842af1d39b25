package services

import (
	"time"

	"huddle/internal/models/db_models"
	"huddle/pkg/utils"
)

// MemberIsAtRiskRule decides, from a member snapshot alone, whether the
// member's latest status warrants human follow-up. Rules are pure and run
// synchronously after every state-changing operation.
type MemberIsAtRiskRule func(member *db_models.Member) bool

// RiskRules carries one rule per workflow. A custom rule replaces both
// defaults entirely; there is no blending.
type RiskRules struct {
	CheckIn MemberIsAtRiskRule
	Alert   MemberIsAtRiskRule
}

// DefaultCheckInRule flags everyone except members who are currently safe,
// not mobilized and have checked in within the short window.
func DefaultCheckInRule(shortWindow time.Duration) MemberIsAtRiskRule {
	return func(member *db_models.Member) bool {
		isSafe := member.CheckIn != nil && member.CheckIn.IsSafe
		isNotMobilized := !member.IsMobilized
		hasCheckedInRecently := member.CheckIn != nil &&
			utils.IsWithin(member.CheckIn.CreatedAtTime(), shortWindow)

		return !(isSafe && isNotMobilized && hasCheckedInRecently)
	}
}

// DefaultAlertRule mirrors DefaultCheckInRule over the alert record.
func DefaultAlertRule(shortWindow time.Duration) MemberIsAtRiskRule {
	return func(member *db_models.Member) bool {
		isSafe := member.Alert != nil && member.Alert.IsSafe != nil && *member.Alert.IsSafe
		isNotMobilized := !member.IsMobilized
		hasAlertedRecently := member.Alert != nil &&
			utils.IsWithin(member.Alert.CreatedAtTime(), shortWindow)

		return !(isSafe && isNotMobilized && hasAlertedRecently)
	}
}

// StrictRule is the configurable alternative: at risk unless the current
// check-in is safe, able to work and requested no support. Members with no
// check-in at all are not flagged.
func StrictRule() MemberIsAtRiskRule {
	return func(member *db_models.Member) bool {
		if member.CheckIn == nil {
			return false
		}
		return !(member.CheckIn.IsSafe && member.CheckIn.IsAbleToWork && member.CheckIn.Support == "1")
	}
}

// ResolveRiskRules maps the configured rule name to the rule pair.
func ResolveRiskRules(name string, shortWindow time.Duration) RiskRules {
	if name == "strict" {
		strict := StrictRule()
		return RiskRules{CheckIn: strict, Alert: strict}
	}

	return RiskRules{
		CheckIn: DefaultCheckInRule(shortWindow),
		Alert:   DefaultAlertRule(shortWindow),
	}
}
