package inventory

import (
	"sort"
	"strings"
)

// RouteExport is the routed subset of a scope, ready to be written out.
type RouteExport struct {
	Name  string
	Items []Item
}

// RouteFileName returns the export base name for a scope.
func RouteFileName(municipality string) string {
	if municipality == "" || municipality == AllMunicipalities {
		return "ROTA_ALL_Consolidado"
	}
	return "ROTA_" + strings.ReplaceAll(municipality, " ", "_")
}

// RouteRows returns the routed items sorted by municipality, visit state,
// validation and name.
func RouteRows(items []Item) []Item {
	routed := make([]Item, 0, len(items))
	for _, it := range DeriveRoutes(items) {
		if it.EnviarCampo {
			routed = append(routed, it)
		}
	}
	sort.SliceStable(routed, func(i, j int) bool {
		a, b := routed[i], routed[j]
		if a.MunicipioNome != b.MunicipioNome {
			return a.MunicipioNome < b.MunicipioNome
		}
		if a.Visitado != b.Visitado {
			return !a.Visitado
		}
		if a.Validacao != b.Validacao {
			return a.Validacao < b.Validacao
		}
		return a.Nome < b.Nome
	})
	return routed
}

// BuildRouteExport assembles the route export of a scope.
func BuildRouteExport(scope Scope) RouteExport {
	return RouteExport{
		Name:  RouteFileName(scope.Municipality),
		Items: RouteRows(scope.Items),
	}
}
