package inventory

import (
	"fmt"
	"strings"
)

var truthyTokens = map[string]struct{}{
	"1":    {},
	"True": {},
	"true": {},
	"SIM":  {},
	"Sim":  {},
}

// ParseFlag interprets spreadsheet truthy encodings. Anything outside the
// accepted tokens, including empty text, is false.
func ParseFlag(v string) bool {
	_, ok := truthyTokens[strings.TrimSpace(v)]
	return ok
}

// NormalizeValidation returns v when it is an accepted option, otherwise
// ValidationBlank.
func NormalizeValidation(v Validation) Validation {
	for _, opt := range ValidationOptions {
		if v == opt {
			return v
		}
	}
	return ValidationBlank
}

// NormalizeStatus returns s when it is an accepted option, otherwise
// StatusInventoried.
func NormalizeStatus(s Status) Status {
	for _, opt := range StatusOptions {
		if s == opt {
			return s
		}
	}
	return StatusInventoried
}

// Enforce converts a canonical-column table into items that satisfy every
// schema invariant.
func Enforce(t RawTable) []Item {
	return EnforceItems(FromTable(t))
}

// EnforceItems coerces enumerated fields and assigns identifiers to rows that
// lack one. The input slice is not modified.
func EnforceItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	taken := make(map[string]struct{}, len(out))
	for i := range out {
		out[i].Validacao = NormalizeValidation(out[i].Validacao)
		out[i].Status = NormalizeStatus(out[i].Status)
		if strings.TrimSpace(out[i].ItemID) != "" {
			taken[out[i].ItemID] = struct{}{}
		}
	}

	seq := 1
	for i := range out {
		if strings.TrimSpace(out[i].ItemID) != "" {
			continue
		}
		base := strings.TrimSpace(out[i].MunicipioID)
		if base == "" {
			base = "0000"
		}
		for {
			id := fmt.Sprintf("%s-%04d", base, seq)
			seq++
			if _, dup := taken[id]; dup {
				continue
			}
			taken[id] = struct{}{}
			out[i].ItemID = id
			break
		}
	}

	return out
}

// Normalize runs the full ingestion pipeline on a source table: column
// mapping, schema enforcement and route derivation.
func Normalize(raw RawTable) []Item {
	return DeriveRoutes(Enforce(MapColumns(raw)))
}
