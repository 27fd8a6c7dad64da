package inventory

import "strings"

// FieldSet is a set of columns a page allows to be edited.
type FieldSet []Column

// Contains reports whether c is in the set.
func (fs FieldSet) Contains(c Column) bool {
	for _, f := range fs {
		if f == c {
			return true
		}
	}
	return false
}

// Intersect returns the columns present in both sets, in fs order.
func (fs FieldSet) Intersect(other FieldSet) FieldSet {
	out := make(FieldSet, 0, len(fs))
	for _, f := range fs {
		if other.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// TransferableFields are the only columns an edited view may overwrite.
var TransferableFields = FieldSet{
	ColEndereco,
	ColTelefone,
	ColLatitude,
	ColLongitude,
	ColValidacao,
	ColObsPreliminar,
	ColEnviarCampo,
}

// OfficeEditableFields is the allowlist of the office (gabinete) page.
var OfficeEditableFields = FieldSet{
	ColEndereco,
	ColTelefone,
	ColLatitude,
	ColLongitude,
	ColValidacao,
	ColObsPreliminar,
	ColEnviarCampo,
}

// FieldEditableFields is the allowlist of the field (campo) page.
var FieldEditableFields = FieldSet{
	ColEndereco,
	ColTelefone,
	ColLatitude,
	ColLongitude,
	ColEnviarCampo,
}

// EditedRow holds the cells an editable view returned for one row.
type EditedRow map[Column]string

// EditedView is the table returned by an editable presentation. Keys carries
// the row keys the presentation was given, by ordinal position; it is used
// when a row does not carry an item_id cell.
type EditedView struct {
	Keys []string
	Rows []EditedRow
}

// Len returns the number of edited rows.
func (v EditedView) Len() int {
	return len(v.Rows)
}

// identity resolves the item_id of row i without ever fabricating one. A
// blank item_id cell counts as absent.
func (v EditedView) identity(i int) (string, bool) {
	if id := strings.TrimSpace(v.Rows[i][ColItemID]); id != "" {
		return id, true
	}
	if i < len(v.Keys) {
		if key := strings.TrimSpace(v.Keys[i]); key != "" {
			return key, true
		}
	}
	return "", false
}

// ApplyRowUpdates merges an edited view into base using the full
// transferable field set.
func ApplyRowUpdates(base []Item, edited EditedView) []Item {
	return Reconcile(base, edited, TransferableFields)
}

// Reconcile merges an edited view into base by item_id, transferring only the
// fields allowed by both fields and TransferableFields. Rows of base absent
// from the view are untouched and unknown identities are ignored, so the
// result always has len(base) rows. The merged table goes through
// EnforceItems and DeriveRoutes before being returned.
func Reconcile(base []Item, edited EditedView, fields FieldSet) []Item {
	if edited.Len() == 0 {
		return base
	}

	allowed := fields.Intersect(TransferableFields)

	byID := make(map[string]EditedRow, edited.Len())
	for i := range edited.Rows {
		id, ok := edited.identity(i)
		if !ok {
			continue
		}
		if _, dup := byID[id]; dup {
			continue
		}
		byID[id] = edited.Rows[i]
	}

	out := make([]Item, len(base))
	copy(out, base)
	for i := range out {
		row, ok := byID[out[i].ItemID]
		if !ok {
			continue
		}
		for _, c := range allowed {
			if v, present := row[c]; present {
				out[i].Set(c, v)
			}
		}
	}

	return DeriveRoutes(EnforceItems(out))
}
