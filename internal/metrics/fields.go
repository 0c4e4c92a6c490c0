package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrRoute    = "route"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrKind     = "kind"
	AttrField    = "field"
	AttrOutcome  = "outcome"
	AttrPolicy   = "policy"
)

// Exploration outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeCriteria   = "criteria"
	OutcomeUpstream   = "upstream"
)
