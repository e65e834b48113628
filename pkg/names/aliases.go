package names

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/daimidata/daimidata/pkg/errors"
)

//go:embed aliases.toml
var defaultAliasesTOML []byte

// aliasFile is the on-disk TOML shape of an alias table.
type aliasFile struct {
	Aliases map[string]string `toml:"aliases"`
}

var defaultNormalizer = sync.OnceValue(func() *Normalizer {
	n, err := parseAliases(defaultAliasesTOML)
	if err != nil {
		// The embedded table is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("names: embedded alias table: %v", err))
	}
	return n
})

// Default returns the process-wide Normalizer backed by the embedded alias
// table. The table is parsed once; all callers share the same instance.
func Default() *Normalizer {
	return defaultNormalizer()
}

// Load reads an alias table from a TOML file, for overriding the embedded
// table without rebuilding.
func Load(path string) (*Normalizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "alias table %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidAliases, err, "read alias table %s", path)
	}
	n, err := parseAliases(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAliases, err, "parse alias table %s", path)
	}
	return n, nil
}

func parseAliases(data []byte) (*Normalizer, error) {
	var f aliasFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Aliases == nil {
		f.Aliases = map[string]string{}
	}
	// An alias whose canonical form is itself an alias key would make
	// Normalize non-idempotent; collapse chains at load time. The step
	// bound guards against alias cycles in a hand-edited table.
	for alias, canonical := range f.Aliases {
		for range len(f.Aliases) {
			next, ok := f.Aliases[canonical]
			if !ok || next == canonical {
				break
			}
			canonical = next
		}
		f.Aliases[alias] = canonical
	}
	return &Normalizer{aliases: f.Aliases}, nil
}
