package parse

import (
	"github.com/tikhop/IntoError/internal/codefmt"
)

// DefaultFallbackName is the variant name synthesized for unions that do not
// declare a wildcard variant.
const DefaultFallbackName = "Unknown"

// Resolve makes sure the sequence ends with exactly one wildcard variant.
// When the sequence already contains one, nothing changes and nil is
// returned. Otherwise a wildcard variant is appended at the lowest match
// priority, and returned so the caller can splice the same member into the
// source union. The appended descriptor and the spliced member always share
// one name: if the preferred name is taken, the numbering rule disambiguates
// it. taken holds the member names the union struct already uses beyond the
// extracted variants, since the spliced member must not collide with skipped
// members either.
func Resolve(seq *VariantSequence, name string, taken map[string]bool) *Variant {
	if _, ok := seq.Wildcard(); ok {
		return nil
	}

	if name == "" {
		name = DefaultFallbackName
	}
	for candidate := range codefmt.DisambiguateName(name) {
		if !seq.Has(candidate) && !taken[candidate] {
			name = candidate
			break
		}
	}

	v := &Variant{
		Name:     name,
		Tag:      "error",
		Wildcard: true,
	}
	seq.append(v)
	return v
}
