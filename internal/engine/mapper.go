package engine

import "github.com/tartampluch/go-vcf2csv/internal/config"

// Row is one line of the produced table, keyed by column name.
// Every column of the schema it was built from is present.
type Row map[string]string

// NewRow returns a row holding every column set to "".
func NewRow(columns []string) Row {
	row := make(Row, len(columns))
	for _, c := range columns {
		row[c] = ""
	}
	return row
}

// Get returns the value of a column, "" when unknown.
func (r Row) Get(column string) string {
	return r[column]
}

// set assigns a column only if it belongs to the row's schema.
func (r Row) set(column, value string) {
	if _, ok := r[column]; ok {
		r[column] = value
	}
}

// Values returns the row flattened in column order.
func (r Row) Values(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = r[c]
	}
	return out
}

// MapContact converts one contact into a table row for the given columns.
// It never fails: absent properties leave their columns empty.
func MapContact(c Contact, columns []string) Row {
	row := NewRow(columns)

	row.set(config.ColKind, valueOf(c.Kind))
	row.set(config.ColGender, valueOf(c.Gender))
	row.set(config.ColUID, valueOf(c.UID))

	// Name Strategy: N (Structured) > FN (Formatted, First Name only)
	if n := c.Name; n != nil {
		row.set(config.ColLastName, n.Family)
		row.set(config.ColFirstName, n.Given)
		row.set(config.ColMiddleName, n.Additional)
		row.set(config.ColTitle, n.Prefix)
		row.set(config.ColSuffix, n.Suffix)
	}
	if row.Get(config.ColFirstName) == "" && c.FormattedName != nil {
		row.set(config.ColFirstName, *c.FormattedName)
	}

	if len(c.Organization) > 0 {
		row.set(config.ColCompany, c.Organization[0])
	}

	for i, e := range c.Emails {
		if i >= len(config.EmailColumns) {
			break
		}
		row.set(config.EmailColumns[i], e.Value)
	}

	mapPhones(row, c.Phones)

	row.set(config.ColNotes, valueOf(c.Note))
	row.set(config.ColBirthday, valueOf(c.Birthday))

	return row
}

// mapPhones dispatches phones in source order. CELL, HOME and WORK each have
// a primary slot and an overflow slot; the overflow slot keeps the last entry.
// Untagged phones only claim Other Phone while it is empty, and a later CELL
// overflow still overwrites it.
func mapPhones(row Row, phones []Phone) {
	for _, p := range phones {
		switch {
		case p.HasType(config.TelTypeCell):
			fillSlot(row, config.ColMobilePhone, config.ColOtherPhone, p.Value)
		case p.HasType(config.TelTypeHome):
			fillSlot(row, config.ColHomePhone, config.ColHomePhone2, p.Value)
		case p.HasType(config.TelTypeWork):
			fillSlot(row, config.ColBusinessPhone, config.ColBusinessPhone2, p.Value)
		default:
			if row.Get(config.ColOtherPhone) == "" {
				row.set(config.ColOtherPhone, p.Value)
			}
		}
	}
}

func fillSlot(row Row, primary, overflow, value string) {
	if row.Get(primary) == "" {
		row.set(primary, value)
		return
	}
	row.set(overflow, value)
}
