// Package agent implements the three role-specialized agents: Analytical
// (statistical analysis of wearable series), Expert (medical-knowledge
// synthesis), and Coach (behavior-change coaching). Each agent is a prompt
// renderer around one gateway call; only the Coach carries state, a bounded
// rolling transcript of its own exchanges.
package agent

import (
	"fmt"
	"strings"
)

// Role identifies one of the closed set of agents a plan may dispatch to.
type Role string

const (
	RoleAnalytical Role = "Analytical"
	RoleExpert     Role = "Expert"
	RoleCoach      Role = "Coach"
)

// Roles lists all dispatchable roles in fixed dispatch order.
func Roles() []Role {
	return []Role{RoleAnalytical, RoleExpert, RoleCoach}
}

// ParseRole maps a wire string onto a Role, tolerating case and the common
// shorthand the model tends to produce.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analytical", "analyst", "analysis", "data":
		return RoleAnalytical, nil
	case "expert", "domain expert", "medical":
		return RoleExpert, nil
	case "coach", "health coach", "coaching":
		return RoleCoach, nil
	}
	return "", fmt.Errorf("unknown agent role %q", s)
}

func (r Role) String() string { return string(r) }
