package canonical

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/mosaic-etl/salesledger/pkg/errors"
)

// AliasTable resolves raw header spellings to canonical field names for
// one platform. Both the canonical name itself and every configured
// alias are registered under their normalized form.
type AliasTable struct {
	lookup map[string]string // normalized spelling -> canonical name
}

// NewAliasTable builds a table from a canonical-name -> spellings map.
// A normalized spelling claimed by two different canonical fields is a
// configuration error: silent precedence between overlapping alias sets
// has bitten before, so it is rejected at load time.
func NewAliasTable(aliasMap map[string][]string) (*AliasTable, error) {
	lookup := make(map[string]string)

	canonicals := make([]string, 0, len(aliasMap))
	for canonical := range aliasMap {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	register := func(spelling, canonical string) error {
		normalized := NormalizeHeader(spelling)
		if existing, ok := lookup[normalized]; ok && existing != canonical {
			return errors.NewConfigError("aliases",
				fmt.Sprintf("spelling %q maps to both %q and %q", spelling, existing, canonical), nil)
		}
		lookup[normalized] = canonical
		return nil
	}

	for _, canonical := range canonicals {
		if err := register(canonical, canonical); err != nil {
			return nil, err
		}
		for _, alias := range aliasMap[canonical] {
			if err := register(alias, canonical); err != nil {
				return nil, err
			}
		}
	}

	return &AliasTable{lookup: lookup}, nil
}

// Lookup resolves a raw header to its canonical field name.
func (t *AliasTable) Lookup(header string) (string, bool) {
	canonical, ok := t.lookup[NormalizeHeader(header)]
	return canonical, ok
}

// Len returns the number of registered spellings.
func (t *AliasTable) Len() int {
	return len(t.lookup)
}

// LoadAliasFile reads a platform's alias document. The YAML maps each
// canonical field name to a list of raw header spellings; a scalar value
// is treated as a single-element list.
func LoadAliasFile(path string) (*AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("alias file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	aliasMap := make(map[string][]string, len(raw))
	for canonical, value := range raw {
		switch v := value.(type) {
		case nil:
			aliasMap[canonical] = nil
		case []any:
			spellings := make([]string, 0, len(v))
			for _, item := range v {
				spellings = append(spellings, fmt.Sprint(item))
			}
			aliasMap[canonical] = spellings
		default:
			aliasMap[canonical] = []string{fmt.Sprint(v)}
		}
	}

	return NewAliasTable(aliasMap)
}
