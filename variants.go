package twconfig

// knownVariants is the variant set of the v2 build tool
var knownVariants = map[string]bool{
	"responsive":        true,
	"dark":              true,
	"motion-safe":       true,
	"motion-reduce":     true,
	"first":             true,
	"last":              true,
	"odd":               true,
	"even":              true,
	"visited":           true,
	"checked":           true,
	"empty":             true,
	"read-only":         true,
	"group-hover":       true,
	"group-focus":       true,
	"focus-within":      true,
	"hover":             true,
	"focus":             true,
	"focus-visible":     true,
	"active":            true,
	"disabled":          true,
	"placeholder-shown": true,
	"required":          true,
	"invalid":           true,
}

// IsKnownVariant reports whether name is a built-in variant
func IsKnownVariant(name string) bool {
	return knownVariants[name]
}

// EffectiveVariants returns the variants enabled for group: the replacement list
// if the group is set, followed by extensions not already listed.
// ok is false when the document does not mention the group.
func (v Variants) EffectiveVariants(group string) (variants []string, ok bool) {
	seen := make(map[string]bool)
	for _, g := range v.Groups {
		if g.Group == group {
			ok = true
			for _, name := range g.Variants {
				if !seen[name] {
					seen[name] = true
					variants = append(variants, name)
				}
			}
		}
	}
	for _, g := range v.Extend {
		if g.Group == group {
			ok = true
			for _, name := range g.Variants {
				if !seen[name] {
					seen[name] = true
					variants = append(variants, name)
				}
			}
		}
	}
	return variants, ok
}

func (v *validator) checkVariants() {
	check := func(where string, groups []VariantGroup) {
		for _, g := range groups {
			label := where + "." + g.Group
			seen := make(map[string]bool, len(g.Variants))
			for _, name := range g.Variants {
				if seen[name] {
					v.add(RuleVariants, SeverityWarning, g.Pos, IssueDuplicateVariant, name, label)
					continue
				}
				seen[name] = true
				if !IsKnownVariant(name) {
					v.add(RuleVariants, SeverityWarning, g.Pos, IssueUnknownVariant, name, label)
				}
			}
		}
	}
	check("variants", v.doc.Variants.Groups)
	check("variants.extend", v.doc.Variants.Extend)
}
