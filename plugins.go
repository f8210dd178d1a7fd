package twconfig

import "strings"

// First-party plugin references
const (
	PluginForms       = "@tailwindcss/forms"
	PluginAspectRatio = "@tailwindcss/aspect-ratio"
	PluginTypography  = "@tailwindcss/typography"
	PluginLineClamp   = "@tailwindcss/line-clamp"
)

// KnownPlugins lists the first-party plugins in their conventional load order
var KnownPlugins = []string{PluginForms, PluginAspectRatio, PluginTypography, PluginLineClamp}

// IsKnownPlugin reports whether name is a first-party plugin
func IsKnownPlugin(name string) bool {
	for _, p := range KnownPlugins {
		if p == name {
			return true
		}
	}
	return false
}

func (v *validator) checkPlugins() {
	seen := make(map[string]bool, len(v.doc.Plugins))
	for _, p := range v.doc.Plugins {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			v.add(RulePlugins, SeverityError, p.Pos, IssueEmptyPlugin)
			continue
		}
		if seen[name] {
			v.add(RulePlugins, SeverityWarning, p.Pos, IssueDuplicatePlugin, name)
			continue
		}
		seen[name] = true
		if !IsKnownPlugin(name) {
			v.add(RulePlugins, SeverityInfo, p.Pos, IssueUnknownPlugin, name)
		}
	}
}
