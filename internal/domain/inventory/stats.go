package inventory

import (
	"sort"
	"strings"
)

// Summary counts items per office validation outcome.
type Summary struct {
	Total       int                `json:"total"`
	ByValidacao map[Validation]int `json:"by_validacao"`
	Sim         int                `json:"sim"`
	Pendente    int                `json:"pendente"`
	NaoOuBranco int                `json:"nao_ou_branco"`
	InRoute     int                `json:"in_route"`
	Visited     int                `json:"visited"`
}

// Summarize computes the office-page counters.
func Summarize(items []Item) Summary {
	s := Summary{
		Total:       len(items),
		ByValidacao: make(map[Validation]int, len(ValidationOptions)),
	}
	for _, v := range ValidationOptions {
		s.ByValidacao[v] = 0
	}
	for _, it := range items {
		s.ByValidacao[it.Validacao]++
		if it.EnviarCampo {
			s.InRoute++
			if it.Visitado {
				s.Visited++
			}
		}
	}
	s.Sim = s.ByValidacao[ValidationYes]
	s.Pendente = s.ByValidacao[ValidationPending]
	s.NaoOuBranco = s.ByValidacao[ValidationNo] + s.ByValidacao[ValidationBlank]
	return s
}

// CategoryCount is the number of items carrying a category label.
type CategoryCount struct {
	Categoria string `json:"categoria"`
	Count     int    `json:"qtd"`
}

// CategoryCounts groups items by CategoryLabel, largest group first.
func CategoryCounts(items []Item) []CategoryCount {
	counts := make(map[string]int)
	for _, it := range items {
		counts[CategoryLabel(it)]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Categoria: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Categoria < out[j].Categoria
	})
	return out
}

// CategoryOptions returns the sorted distinct category labels.
func CategoryOptions(items []Item) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, it := range items {
		label := CategoryLabel(it)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Progress counts the field route state.
type Progress struct {
	InRoute int `json:"in_route"`
	Visited int `json:"visited"`
	ToVisit int `json:"to_visit"`
}

// FieldProgress counts routed items and how many were visited.
func FieldProgress(items []Item) Progress {
	var p Progress
	for _, it := range items {
		if !it.EnviarCampo {
			continue
		}
		p.InRoute++
		if it.Visitado {
			p.Visited++
		} else {
			p.ToVisit++
		}
	}
	return p
}

// MunicipalityOptions returns AllMunicipalities followed by the sorted
// distinct non-blank municipality names.
func MunicipalityOptions(master []Item) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, it := range master {
		if strings.TrimSpace(it.MunicipioNome) == "" {
			continue
		}
		if _, ok := seen[it.MunicipioNome]; ok {
			continue
		}
		seen[it.MunicipioNome] = struct{}{}
		names = append(names, it.MunicipioNome)
	}
	sort.Strings(names)
	return append([]string{AllMunicipalities}, names...)
}

// ResolveMunicipality returns choice when it is one of the options, otherwise
// AllMunicipalities.
func ResolveMunicipality(master []Item, choice string) string {
	for _, opt := range MunicipalityOptions(master) {
		if opt == choice {
			return choice
		}
	}
	return AllMunicipalities
}
