package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Origin selects items by status.
type Origin string

const (
	OriginAll    Origin = "Todos"
	OriginINVTUR Origin = "INVTUR"
	OriginNew    Origin = "Novo"
)

// NoCategoryTag labels items whose category is blank.
const NoCategoryTag = "Sem categoria"

// OriginOptions lists the accepted origin filters.
var OriginOptions = []Origin{OriginAll, OriginINVTUR, OriginNew}

// Filter holds the predicate parameters of a page view. The zero value
// matches every item.
type Filter struct {
	Query         string
	Validations   []Validation
	Origin        Origin
	Categories    []string
	OnlyRoute     bool
	OnlyUnvisited bool
}

// CategoryLabel returns the display category, substituting NoCategoryTag for
// blank values.
func CategoryLabel(it Item) string {
	c := strings.TrimSpace(it.Categoria)
	if c == "" {
		return NoCategoryTag
	}
	return c
}

func (f Filter) predicates() []func(Item) bool {
	var preds []func(Item) bool

	if q := strings.TrimSpace(f.Query); q != "" {
		lower := cases.Lower(language.Und)
		needle := lower.String(q)
		preds = append(preds, func(it Item) bool {
			for _, field := range []string{it.Nome, it.Categoria, it.Descricao, it.Endereco} {
				if strings.Contains(lower.String(field), needle) {
					return true
				}
			}
			return false
		})
	}

	if len(f.Validations) > 0 {
		allowed := make(map[Validation]struct{}, len(f.Validations))
		for _, v := range f.Validations {
			allowed[v] = struct{}{}
		}
		preds = append(preds, func(it Item) bool {
			_, ok := allowed[it.Validacao]
			return ok
		})
	}

	switch f.Origin {
	case OriginINVTUR:
		preds = append(preds, func(it Item) bool { return it.Status == StatusInventoried })
	case OriginNew:
		preds = append(preds, func(it Item) bool { return it.Status == StatusNew })
	}

	if len(f.Categories) > 0 {
		allowed := make(map[string]struct{}, len(f.Categories))
		for _, c := range f.Categories {
			allowed[c] = struct{}{}
		}
		preds = append(preds, func(it Item) bool {
			if _, ok := allowed[it.Categoria]; ok {
				return true
			}
			_, ok := allowed[CategoryLabel(it)]
			return ok
		})
	}

	if f.OnlyRoute {
		preds = append(preds, func(it Item) bool { return it.EnviarCampo })
	}

	if f.OnlyUnvisited {
		preds = append(preds, func(it Item) bool { return it.EnviarCampo && !it.Visitado })
	}

	return preds
}

// Match reports whether an item satisfies every active predicate.
func (f Filter) Match(it Item) bool {
	for _, p := range f.predicates() {
		if !p(it) {
			return false
		}
	}
	return true
}

// Apply returns the items matching the filter, preserving order.
func (f Filter) Apply(items []Item) []Item {
	preds := f.predicates()
	out := make([]Item, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}
