package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Access level constants
const (
	AccessReject = "REJECT"
	AccessAllow  = "ALLOW"
)

// AccessRule decides whether an API key may run a command
type AccessRule struct {
	Key     string `yaml:"key"`     // Pattern: literal string or /regexp/
	Command string `yaml:"command"` // Pattern: literal string or /regexp/
	Access  string `yaml:"access"`  // REJECT or ALLOW
}

// PatternMatcher matches strings either exactly or via regexp
type PatternMatcher interface {
	Match(s string) bool
}

// literalMatcher performs exact string matching
type literalMatcher string

func (m literalMatcher) Match(s string) bool {
	return string(m) == s
}

// regexpMatcher performs regex matching
type regexpMatcher struct {
	re *regexp.Regexp
}

func (m *regexpMatcher) Match(s string) bool {
	return m.re.MatchString(s)
}

// parsePattern returns a matcher for literal strings or /regexp/ patterns.
// Regexp patterns are auto-anchored to match the full string.
func parsePattern(pattern string) (PatternMatcher, error) {
	if strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") && len(pattern) > 1 {
		re, err := regexp.Compile("^(?:" + pattern[1:len(pattern)-1] + ")$")
		if err != nil {
			return nil, err
		}
		return &regexpMatcher{re: re}, nil
	}
	return literalMatcher(pattern), nil
}

type compiledRule struct {
	keyMatcher     PatternMatcher
	commandMatcher PatternMatcher
	access         string
}

// AccessValidator checks commands against the configured rules
type AccessValidator struct {
	rules []*compiledRule
}

// NewAccessValidator compiles rules. Returns an error if any rule has an
// invalid pattern or access level.
func NewAccessValidator(rules []AccessRule) (*AccessValidator, error) {
	v := &AccessValidator{
		rules: make([]*compiledRule, 0, len(rules)),
	}

	for i, rule := range rules {
		compiled := &compiledRule{access: rule.Access}
		var err error

		compiled.keyMatcher, err = parsePattern(rule.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid key pattern in rule %d: %w", i, err)
		}

		compiled.commandMatcher, err = parsePattern(rule.Command)
		if err != nil {
			return nil, fmt.Errorf("invalid command pattern in rule %d: %w", i, err)
		}

		switch rule.Access {
		case AccessReject, AccessAllow:
		default:
			return nil, fmt.Errorf("invalid access level in rule %d: %q", i, rule.Access)
		}

		v.rules = append(v.rules, compiled)
	}

	return v, nil
}

// Check returns nil if key may run command, an error otherwise.
// Rules are evaluated top to bottom; the first match wins and a command no
// rule matches is allowed. A nil validator allows everything.
func (v *AccessValidator) Check(key, command string) error {
	if v == nil {
		return nil
	}
	for _, rule := range v.rules {
		if rule.keyMatcher.Match(key) && rule.commandMatcher.Match(command) {
			if rule.access == AccessReject {
				return fmt.Errorf("access denied for command %q", command)
			}
			return nil
		}
	}
	return nil
}
