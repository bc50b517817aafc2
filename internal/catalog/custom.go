package catalog

import (
	"github.com/ancients-collective/kharden/internal/engine"
	"github.com/ancients-collective/kharden/internal/types"
)

// FromDefinition builds an engine check from a loaded custom definition.
// A definition with alternatives becomes an any-of composite with the
// primary option first.
func FromDefinition(def types.CheckDefinition) engine.Check {
	primary := direct(engine.Source(def.Source), def.Category, def.Justification, def.Name, def.Expected)
	if len(def.Alternatives) == 0 {
		return primary
	}

	subs := make([]engine.Check, 0, len(def.Alternatives)+1)
	subs = append(subs, primary)
	for _, alt := range def.Alternatives {
		subs = append(subs, direct(engine.Source(alt.Source), def.Category, def.Justification, alt.Name, alt.Expected))
	}
	return engine.NewAny(subs...)
}
