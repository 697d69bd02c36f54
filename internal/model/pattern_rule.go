package model

// PatternRule files imported expenses whose description matches Pattern
// under Category. Rules come from the import.rules config list.
type PatternRule struct {
	AmountValue     *float64 `mapstructure:"amount_value"`
	AmountMin       *float64 `mapstructure:"amount_min"`
	AmountMax       *float64 `mapstructure:"amount_max"`
	Name            string   `mapstructure:"name"`
	Pattern         string   `mapstructure:"pattern"`
	AmountCondition string   `mapstructure:"amount_condition"`
	Category        string   `mapstructure:"category"`
	Priority        int      `mapstructure:"priority"`
	IsRegex         bool     `mapstructure:"regex"`
	Disabled        bool     `mapstructure:"disabled"`
}

// AmountConditionType represents the type of amount comparison.
type AmountConditionType string

// Amount condition constants. An empty condition behaves like AmountAny.
const (
	AmountLessThan     AmountConditionType = "lt"
	AmountLessEqual    AmountConditionType = "le"
	AmountEqual        AmountConditionType = "eq"
	AmountGreaterEqual AmountConditionType = "ge"
	AmountGreaterThan  AmountConditionType = "gt"
	AmountRange        AmountConditionType = "range"
	AmountAny          AmountConditionType = "any"
)
