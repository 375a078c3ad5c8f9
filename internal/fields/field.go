package fields

// Field describes one column that may appear in a sample log.
type Field struct {
	// Name is the key used in the header row of the Data sheet and in the
	// first column of the Metadata sheet.
	Name        string
	DisplayName string
	Rule        Rule

	// Inherit means a child event may leave the value empty when one of its
	// ancestors provides it. InheritWeak keeps values a child already has
	// when the inherited value is filled in.
	Inherit     bool
	InheritWeak bool

	Units             string
	DwcID             string
	MeasurementTypeID string
	MeasurementUnitID string
}

// field is used by the static declarations below to keep them short.
func field(name, display string, rule Rule) Field {
	return Field{Name: name, DisplayName: display, Rule: rule}
}

func (f Field) inherit() Field {
	f.Inherit = true
	return f
}

func (f Field) weak() Field {
	f.Inherit = true
	f.InheritWeak = true
	return f
}

func (f Field) units(u string) Field {
	f.Units = u
	return f
}

func (f Field) dwc(id string) Field {
	f.DwcID = id
	return f
}

func (f Field) measurement(typeID string) Field {
	f.MeasurementTypeID = typeID
	return f
}
