// Package seed loads the caller-provided initial environment — the engine
// injects no names of its own — from a YAML document.
package seed

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/velatype/vela/types"
)

// Doc is the top-level shape of a seed YAML document.
type Doc struct {
	Bindings []Binding `yaml:"bindings"`
}

// Binding declares one name in the seed environment. Type is a small
// type-expression grammar (see typeexpr.go): Named identifiers, `A|B`
// unions, `(A, B) => R` functions, and lowercase identifiers standing for
// universally-quantified variables (making the scheme a Forall).
type Binding struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Default is the seed environment used by the engine's worked scenarios:
// ambig, parseInt and identity.
const Default = `
bindings:
  - name: ambig
    type: "() => number|undefined"
  - name: parseInt
    type: "(string, number|undefined) => number"
  - name: identity
    type: "(x) => x"
`

// Load reads and elaborates a seed document from path into an Env. An
// empty path loads the Default document.
func Load(path string) (types.Env, error) {
	if path == "" {
		return parse([]byte(Default))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file %s", path)
	}
	return parse(data)
}

func parse(data []byte) (types.Env, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing seed document")
	}

	env := types.Env{}
	for _, b := range doc.Bindings {
		t, quantifiers, err := parseTypeExpr(b.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "seed binding %q", b.Name)
		}
		if quantifiers.Len() == 0 {
			env = env.Add(b.Name, types.Bare(t))
		} else {
			env = env.Add(b.Name, types.Forall(quantifiers, t))
		}
	}
	return env, nil
}
