package intent

// Constraints carries the bounds a dispatch plan must respect.
type Constraints struct {
	Budget      *float64 `json:"budget"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Location    string   `json:"location"`
	Preferences []string `json:"preferences"`
}

// DispatchPlan is the finalized output of a planning cycle: general
// activity categories, constraints, and the downstream specialist
// agents to invoke.
type DispatchPlan struct {
	ActivityList []string    `json:"activity_list"`
	Constraints  Constraints `json:"constraints"`
	AgentsToCall []string    `json:"agents_to_call"`
	Notes        string      `json:"notes"`
}

// VaguenessResult is the outcome of the vagueness-check template.
type VaguenessResult struct {
	IsVague  bool   `json:"is_vague"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

// BasicConstraints is what the extract-constraints template pulls out
// of the raw request text.
type BasicConstraints struct {
	Budget    *float64 `json:"budget"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
}

// TransactionSummary is the slice of a stored transaction that the
// preference-inference template sees.
type TransactionSummary struct {
	Activity string  `json:"activity"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Location string  `json:"location"`
}
