package config

import (
	"strings"
)

func ruleHeader(rule string) string {
	return "[lint.rules." + rule + "]"
}

// UpsertRuleConfig inserts or replaces a [lint.rules.<rule>] section.
func UpsertRuleConfig(existing, rule string, values map[string]any) (string, bool) {
	header := ruleHeader(rule)
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines)+4)
	replaced := false

	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == header {
			out = append(out, line)
			appendRuleOptions(&out, values)
			replaced = true
			i++
			for i < len(lines) && !isSectionHeader(strings.TrimSpace(lines[i])) {
				i++
			}
			continue
		}
		out = append(out, line)
		i++
	}

	if !replaced {
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, "# Added by domid config rule")
		out = append(out, header)
		appendRuleOptions(&out, values)
	}

	return strings.Join(out, "\n"), true
}

// DeleteRuleConfig removes a [lint.rules.<rule>] section if present, which
// puts the rule back on its default severity.
func DeleteRuleConfig(existing, rule string) (string, bool) {
	header := ruleHeader(rule)
	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	removed := false

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == header {
			removed = true
			i++
			for i < len(lines) && !isSectionHeader(strings.TrimSpace(lines[i])) {
				i++
			}
			continue
		}
		out = append(out, lines[i])
		i++
	}

	return strings.Join(out, "\n"), removed
}

func appendRuleOptions(out *[]string, values map[string]any) {
	if s, ok := values["severity"]; ok {
		writeTOMLOptionLines(func(l ...string) { *out = append(*out, l...) }, "severity", s, "")
	}
}

func isSectionHeader(trim string) bool {
	if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
		return false
	}
	return strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]")
}
