package inventory

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AllMunicipalities selects the consolidated scope.
const AllMunicipalities = "Todos (consolidado)"

// Scope is the working subset of the master table for one page context.
// It remembers where each of its rows lives in the master table.
type Scope struct {
	Municipality string
	Items        []Item
	positions    []int
}

// All reports whether the scope covers the whole master table.
func (s Scope) All() bool {
	return s.Municipality == "" || s.Municipality == AllMunicipalities
}

// SelectScope returns every row (municipality empty or AllMunicipalities) or
// only the rows whose municipio_nome equals municipality.
func SelectScope(master []Item, municipality string) Scope {
	scope := Scope{Municipality: municipality}
	for i, it := range master {
		if scope.All() || it.MunicipioNome == municipality {
			scope.Items = append(scope.Items, it)
			scope.positions = append(scope.positions, i)
		}
	}
	scope.Items = DeriveRoutes(scope.Items)
	return scope
}

// Recombine merges a reconciled scope back into master. Rows outside the
// scope are untouched and keep their positions. The combined table goes
// through EnforceItems and DeriveRoutes; changed reports whether it differs
// structurally from master. When reconciled does not line up with the scope
// rows, the remainder keeps its order and reconciled is appended after it.
func Recombine(master []Item, scope Scope, reconciled []Item) ([]Item, bool) {
	var combined []Item
	if len(reconciled) == len(scope.positions) {
		combined = make([]Item, len(master))
		copy(combined, master)
		for k, pos := range scope.positions {
			combined[pos] = reconciled[k]
		}
	} else {
		inScope := make(map[int]struct{}, len(scope.positions))
		for _, pos := range scope.positions {
			inScope[pos] = struct{}{}
		}
		combined = make([]Item, 0, len(master)+len(reconciled))
		for i, it := range master {
			if _, ok := inScope[i]; !ok {
				combined = append(combined, it)
			}
		}
		combined = append(combined, reconciled...)
	}

	combined = DeriveRoutes(EnforceItems(combined))
	return combined, !cmp.Equal(combined, master, cmpopts.EquateEmpty())
}

// ApplyToScope runs the whole edit cycle for a page: select the scope,
// reconcile the edited view against it and recombine with the master table.
func ApplyToScope(master []Item, municipality string, edited EditedView, fields FieldSet) ([]Item, bool) {
	if edited.Len() == 0 {
		return master, false
	}
	scope := SelectScope(master, municipality)
	reconciled := Reconcile(scope.Items, edited, fields)
	return Recombine(master, scope, reconciled)
}
