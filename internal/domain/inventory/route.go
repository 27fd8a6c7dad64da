package inventory

// AutoRouted reports whether a validation outcome sends the item to the field.
func AutoRouted(v Validation) bool {
	return v == ValidationYes || v == ValidationPending
}

// DeriveRoute computes the corrected route and visit flags. Manual inclusion
// is never revoked; an item outside the route cannot be visited.
func DeriveRoute(v Validation, enviarCampo, visitado bool) (bool, bool) {
	route := enviarCampo || AutoRouted(v)
	if !route {
		visitado = false
	}
	return route, visitado
}

// DeriveRoutes applies DeriveRoute to every item. The input slice is not
// modified.
func DeriveRoutes(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.EnviarCampo, it.Visitado = DeriveRoute(it.Validacao, it.EnviarCampo, it.Visitado)
		out[i] = it
	}
	return out
}
