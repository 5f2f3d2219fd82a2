package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	return renderTOML("# domid configuration (TOML)", func(o ConfigOption) any { return o.Default })
}

// RenderEffectiveTOML renders the resolved value of every option in v, after
// defaults, the config file and DOMID_* variables were applied.
func RenderEffectiveTOML(v *viper.Viper) string {
	header := "# effective domid configuration"
	if f := v.ConfigFileUsed(); f != "" {
		header += " (file: " + f + ")"
	}
	return renderTOML(header, func(o ConfigOption) any {
		switch o.Default.(type) {
		case bool:
			return v.GetBool(o.Key)
		case []string:
			return v.GetStringSlice(o.Key)
		default:
			return v.GetString(o.Key)
		}
	})
}

func renderTOML(header string, value func(ConfigOption) any) string {
	var b strings.Builder
	b.WriteString(header + "\n\n")

	opts := GetConfigOptions()
	topLevel := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)

	for _, o := range opts {
		section, key, ok := splitKey(o.Key)
		if !ok {
			topLevel = append(topLevel, o)
			continue
		}
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     key,
			Default: value(o),
			Comment: o.Comment,
		})
	}

	for _, o := range topLevel {
		writeTOMLOption(&b, o.Key, value(o), o.Comment)
	}

	for _, section := range sectionOrder {
		opts := sections[section]
		if len(opts) == 0 {
			continue
		}
		b.WriteString("[" + section + "]\n")
		for _, o := range opts {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// UpdateTOML adds the options existing lacks and comments out keys that are
// no longer options. Missing keys go into their table when the file already
// has it, so no table is declared twice.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	// tableEnd is the index in out after the last line of each table; ""
	// is the root table, which ends at the first header.
	tableEnd := map[string]int{}
	present := make(map[string]bool)
	section := ""
	rootOpen := true
	changed := false
	out := make([]string, 0)

	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		if isSectionHeader(trim) {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			rootOpen = false
			out = append(out, line)
			tableEnd[section] = len(out)
			continue
		}
		key, ok := parseTOMLKey(line)
		switch {
		case !ok:
			out = append(out, line)
		case known[joinKey(section, key)]:
			present[joinKey(section, key)] = true
			out = append(out, line)
		default:
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
		}
		if ok && (section != "" || rootOpen) {
			tableEnd[section] = len(out)
		}
	}
	if _, ok := tableEnd[""]; !ok {
		tableEnd[""] = 0
	}

	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	var newTables []string
	added := map[string][]string{}
	for _, o := range GetConfigOptions() {
		if present[o.Key] {
			continue
		}
		table, leaf, _ := splitKey(o.Key)
		if _, ok := added[table]; !ok {
			newTables = append(newTables, table)
		}
		writeTOMLOptionLines(func(l ...string) { added[table] = append(added[table], l...) }, leaf, o.Default, o.Comment)
		changed = true
	}
	if !changed {
		return existing, false
	}

	var trailer []string
	for _, table := range newTables {
		lines := added[table]
		if at, ok := tableEnd[table]; ok {
			inserts = append(inserts, insertion{at, lines})
			continue
		}
		if len(trailer) == 0 {
			trailer = append(trailer, "", "# Added by config update")
		}
		trailer = append(trailer, "["+table+"]")
		trailer = append(trailer, lines...)
	}

	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		out = append(out[:ins.at], append(ins.lines, out[ins.at:]...)...)
	}
	out = append(out, trailer...)
	return strings.Join(out, "\n"), true
}

func joinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

// splitKey splits a dotted option key into its table and leaf key, so
// lint.rules.ttid.severity renders as severity under [lint.rules.ttid].
func splitKey(key string) (section, leaf string, ok bool) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return "", key, false
	}
	return key[:i], key[i+1:], true
}

func parseTOMLKey(line string) (string, bool) {
	if trim := strings.TrimSpace(line); strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
		return "", false
	}
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") {
		return "", false
	}
	if strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	writeTOMLOptionLines(func(l ...string) {
		for _, line := range l {
			b.WriteString(line + "\n")
		}
	}, key, value, comment)
}

// writeTOMLOptionLines emits an optional comment, key = value, and a blank
// line.
func writeTOMLOptionLines(emit func(...string), key string, value any, comment string) {
	if comment != "" {
		emit("# " + comment)
	}
	emit(key+" = "+tomlValue(value), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
