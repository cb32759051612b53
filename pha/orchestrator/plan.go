package orchestrator

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/agent"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/extract"
)

// Plan is the per-turn task assignment. Produced fresh for every query and
// never persisted.
type Plan struct {
	UserIntent       string            `json:"user_intent"`
	MainAgent        string            `json:"main_agent"`
	SupportingAgents []string          `json:"supporting_agents"`
	Tasks            map[string]string `json:"tasks"`
}

// planSchema keeps the model honest about the plan shape. Validation
// failure is recoverable: the caller falls back to a default plan.
var planSchema = []byte(`{
	"type": "object",
	"required": ["main_agent", "tasks"],
	"properties": {
		"user_intent": {"type": "string"},
		"main_agent": {"type": "string"},
		"supporting_agents": {"type": "array", "items": {"type": "string"}},
		"tasks": {"type": "object", "additionalProperties": {"type": "string"}}
	}
}`)

// fallbackPlan is substituted whenever the intent step yields nothing
// usable. The pipeline must always have a plan.
func fallbackPlan(query string) *Plan {
	return &Plan{
		UserIntent:       "general health question",
		MainAgent:        agent.RoleCoach.String(),
		SupportingAgents: []string{agent.RoleExpert.String()},
		Tasks: map[string]string{
			agent.RoleCoach.String():  query,
			agent.RoleExpert.String(): "Provide relevant health insights for: " + query,
		},
	}
}

// parsePlan extracts and validates a plan from raw model output. Any
// failure at any tier returns the fallback.
func parsePlan(text, query string, logger zerolog.Logger) *Plan {
	raw, err := extract.JSON(text)
	if err != nil {
		logger.Warn().Err(err).Msg("plan extraction failed, using fallback plan")
		return fallbackPlan(query)
	}

	if err := extract.ValidateSchema(raw, planSchema); err != nil {
		logger.Warn().Err(err).Msg("plan failed schema validation, using fallback plan")
		return fallbackPlan(query)
	}

	var plan Plan
	if err := extract.Decode(text, &plan); err != nil {
		logger.Warn().Err(err).Msg("plan decode failed, using fallback plan")
		return fallbackPlan(query)
	}

	if _, err := agent.ParseRole(plan.MainAgent); err != nil {
		logger.Warn().Str("main_agent", plan.MainAgent).Msg("plan names unknown main agent, using fallback plan")
		return fallbackPlan(query)
	}

	return &plan
}

// Main returns the plan's main agent role.
func (p *Plan) Main() agent.Role {
	role, err := agent.ParseRole(p.MainAgent)
	if err != nil {
		return agent.RoleCoach
	}
	return role
}

// TaskFor returns the task string assigned to role, normalizing whatever
// key spelling the model used. The canonical key wins over aliases, and
// aliases are scanned in sorted order so duplicate spellings resolve
// deterministically. Empty string means the role does not run.
func (p *Plan) TaskFor(role agent.Role) string {
	if task, ok := p.Tasks[role.String()]; ok {
		return task
	}

	keys := make([]string, 0, len(p.Tasks))
	for key := range p.Tasks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if parsed, err := agent.ParseRole(key); err == nil && parsed == role {
			return p.Tasks[key]
		}
	}
	return ""
}
