package linker

import (
	"strings"

	"github.com/blackthreadai/wildcatter/pkg/normalize"
	"github.com/blackthreadai/wildcatter/pkg/types"
)

// nameIndex maps a normalized name variant to the operator it belongs
// to, built once per run from every operator's legal name and aliases.
type nameIndex map[string]*types.Operator

func buildNameIndex(operators []*types.Operator) nameIndex {
	idx := make(nameIndex, len(operators)*2)
	for _, op := range operators {
		idx[normalize.NormalizeForMatching(op.LegalName)] = op
		for _, alias := range op.Aliases {
			key := normalize.NormalizeForMatching(alias)
			if _, exists := idx[key]; !exists {
				idx[key] = op
			}
		}
	}
	return idx
}

// segments splits an asset name on the separators an upstream source
// commonly uses to join an operator name onto a well name ("-", en
// dash, em dash, "#"), trimming whitespace and dropping empty pieces.
func segments(name string) []string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		switch r {
		case '-', '–', '—', '#':
			return true
		default:
			return false
		}
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// lookup tries every segment of name against idx, returning the first
// operator matched.
func (idx nameIndex) lookup(name string) (*types.Operator, bool) {
	for _, seg := range segments(name) {
		if op, ok := idx[normalize.NormalizeForMatching(seg)]; ok {
			return op, true
		}
	}
	return nil, false
}
