// Package pattern assigns categories to imported expenses using
// description rules.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
)

// ErrInvalidRule is returned for rules that can never match.
var ErrInvalidRule = errors.New("invalid pattern rule")

// Rule is an alias to the model.PatternRule type for convenience.
type Rule = model.PatternRule

// Matcher evaluates expenses against pattern rules.
type Matcher struct {
	compiledRegex map[int]*regexp.Regexp
	rules         []Rule
}

// NewMatcher validates the rules and pre-compiles regex patterns. Rules are
// kept highest priority first; equal priorities keep their config order.
func NewMatcher(rules []Rule) (*Matcher, error) {
	m := &Matcher{
		rules:         make([]Rule, len(rules)),
		compiledRegex: make(map[int]*regexp.Regexp),
	}
	copy(m.rules, rules)
	sort.SliceStable(m.rules, func(i, j int) bool {
		return m.rules[i].Priority > m.rules[j].Priority
	})

	for i, rule := range m.rules {
		if strings.TrimSpace(rule.Category) == "" {
			return nil, fmt.Errorf("%w: rule %q has no category", ErrInvalidRule, ruleName(rule))
		}
		if rule.IsRegex && rule.Pattern != "" {
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %w", ErrInvalidRule, ruleName(rule), err)
			}
			m.compiledRegex[i] = re
		}
	}

	return m, nil
}

// Match returns the rules the expense satisfies, highest priority first.
func (m *Matcher) Match(e model.NewExpense) []Rule {
	var matches []Rule
	for i, rule := range m.rules {
		if rule.Disabled {
			continue
		}
		if m.matchesDescription(i, e, rule) && matchesAmount(e, rule) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// Categorize sets the category of every expense that matches a rule and
// returns how many were changed.
func (m *Matcher) Categorize(expenses []model.NewExpense) int {
	changed := 0
	for i := range expenses {
		if matches := m.Match(expenses[i]); len(matches) > 0 {
			expenses[i].Category = matches[0].Category
			changed++
		}
	}
	return changed
}

// Categories lists the distinct categories the rules can assign.
func (m *Matcher) Categories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, rule := range m.rules {
		if !rule.Disabled && !seen[rule.Category] {
			seen[rule.Category] = true
			names = append(names, rule.Category)
		}
	}
	return names
}

// matchesDescription checks if the description contains the rule pattern.
func (m *Matcher) matchesDescription(i int, e model.NewExpense, rule Rule) bool {
	if rule.Pattern == "" {
		return true // No pattern means match all
	}

	if rule.IsRegex {
		if re, ok := m.compiledRegex[i]; ok {
			return re.MatchString(e.Description)
		}
		return false
	}

	// Substring match (case-insensitive)
	return strings.Contains(strings.ToLower(e.Description), strings.ToLower(rule.Pattern))
}

// matchesAmount checks if the expense amount matches the rule condition.
func matchesAmount(e model.NewExpense, rule Rule) bool {
	amount := e.Amount

	switch model.AmountConditionType(rule.AmountCondition) {
	case "", model.AmountAny:
		return true
	case model.AmountLessThan:
		return rule.AmountValue != nil && amount < *rule.AmountValue
	case model.AmountLessEqual:
		return rule.AmountValue != nil && amount <= *rule.AmountValue
	case model.AmountEqual:
		return rule.AmountValue != nil && amount == *rule.AmountValue
	case model.AmountGreaterEqual:
		return rule.AmountValue != nil && amount >= *rule.AmountValue
	case model.AmountGreaterThan:
		return rule.AmountValue != nil && amount > *rule.AmountValue
	case model.AmountRange:
		if rule.AmountMin != nil && amount < *rule.AmountMin {
			return false
		}
		if rule.AmountMax != nil && amount > *rule.AmountMax {
			return false
		}
		return true
	}

	return false
}

func ruleName(rule Rule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return rule.Pattern
}
