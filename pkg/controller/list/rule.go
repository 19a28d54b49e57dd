package list

// RuleInfo is a rule of the style guide. It is used for template rendering.
type RuleInfo struct {
	ID          string
	Description string
	Enabled     bool
}
