package flags

import (
	"fmt"
	"strings"
)

const (
	choiceSeparatorConstant           = "|"
	choiceUsageTemplateConstant       = "`<%s>` %s"
	choiceUsageBareTemplateConstant   = "`<%s>`"
	unsupportedChoiceTemplateConstant = "unsupported value %q (expected one of %s)"
)

// ChoiceSet is a closed list of case-insensitive flag values with a default used for blank input.
type ChoiceSet struct {
	Default string
	Values  []string
}

// UnsupportedChoiceError reports a value outside the allowed set.
type UnsupportedChoiceError struct {
	Value   string
	Allowed []string
}

func (unsupported UnsupportedChoiceError) Error() string {
	return fmt.Sprintf(unsupportedChoiceTemplateConstant, unsupported.Value, strings.Join(unsupported.Allowed, ", "))
}

// Parse trims and lower-cases raw, returning the default for blank input.
func (choices ChoiceSet) Parse(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if len(normalized) == 0 {
		return strings.ToLower(strings.TrimSpace(choices.Default)), nil
	}
	for _, value := range choices.normalizedValues() {
		if value == normalized {
			return value, nil
		}
	}
	return "", UnsupportedChoiceError{Value: raw, Allowed: choices.normalizedValues()}
}

// Usage renders the choices as `<a|B|c>` followed by description, upper-casing the default.
func (choices ChoiceSet) Usage(description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(choices.Default))
	displayed := choices.normalizedValues()
	for index, value := range displayed {
		if value == normalizedDefault {
			displayed[index] = strings.ToUpper(value)
		}
	}

	placeholder := strings.Join(displayed, choiceSeparatorConstant)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageBareTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceUsageTemplateConstant, placeholder, description)
}

// normalizedValues returns trimmed lower-case values without blanks or repeats, in declaration order.
func (choices ChoiceSet) normalizedValues() []string {
	seen := make(map[string]struct{}, len(choices.Values))
	normalized := make([]string, 0, len(choices.Values))
	for _, value := range choices.Values {
		candidate := strings.ToLower(strings.TrimSpace(value))
		if len(candidate) == 0 {
			continue
		}
		if _, duplicate := seen[candidate]; duplicate {
			continue
		}
		seen[candidate] = struct{}{}
		normalized = append(normalized, candidate)
	}
	return normalized
}
