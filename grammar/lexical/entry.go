package lexical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
	"go.uber.org/multierr"
)

// LexEntry is one token category of a description: a name and the pattern its words match.
type LexEntry struct {
	Kind    spec.LexKindName
	Pattern string
}

// LexSpec is an ordered list of categories. The order decides which category wins when a word
// matches more than one.
type LexSpec struct {
	Entries []*LexEntry
}

func (s *LexSpec) Validate() error {
	if len(s.Entries) <= 0 {
		return fmt.Errorf("the token description must have at least one entry")
	}

	var errs error
	kinds := map[spec.LexKindName]struct{}{}
	var names []string
	for i, e := range s.Entries {
		if e.Kind == "" {
			errs = multierr.Append(errs, fmt.Errorf("entry #%v: a category needs a name", i+1))
			continue
		}
		if e.Kind == symbol.CategoryEOF || e.Kind == symbol.CategoryEpsilon {
			errs = multierr.Append(errs, fmt.Errorf("category `%v` is reserved", e.Kind))
			continue
		}
		if _, exist := kinds[e.Kind]; exist {
			errs = multierr.Append(errs, fmt.Errorf("categories `%v` are duplicates", e.Kind))
			continue
		}
		kinds[e.Kind] = struct{}{}
		names = append(names, e.Kind.String())
		if e.Pattern == "" {
			errs = multierr.Append(errs, fmt.Errorf("category `%v`: a pattern must be a non-empty string", e.Kind))
		}
	}
	for _, dup := range FindSpellingInconsistencies(names) {
		errs = multierr.Append(errs, fmt.Errorf("these categories are treated as the same. please use the same spelling: %v", strings.Join(dup, ", ")))
	}

	return errs
}

// FindSpellingInconsistencies finds identifiers that are spelled the same when expressed in
// UpperCamelCase. For example, `left_paren` and `LeftParen` are considered inconsistent.
func FindSpellingInconsistencies(ids []string) [][]string {
	m := map[string][]string{}
	for _, id := range removeDuplicates(ids) {
		c := SnakeCaseToUpperCamelCase(id)
		m[c] = append(m[c], id)
	}

	var duplicated [][]string
	for _, camels := range m {
		if len(camels) == 1 {
			continue
		}
		sort.Strings(camels)
		duplicated = append(duplicated, camels)
	}
	sort.Slice(duplicated, func(i, j int) bool {
		return duplicated[i][0] < duplicated[j][0]
	})

	return duplicated
}

func removeDuplicates(s []string) []string {
	m := map[string]struct{}{}
	var unique []string
	for _, v := range s {
		if _, ok := m[v]; ok {
			continue
		}
		m[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

func SnakeCaseToUpperCamelCase(snake string) string {
	elems := strings.Split(snake, "_")
	for i, e := range elems {
		if len(e) == 0 {
			continue
		}
		elems[i] = strings.ToUpper(string(e[0])) + e[1:]
	}

	return strings.Join(elems, "")
}
