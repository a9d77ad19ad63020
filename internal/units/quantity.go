package units

// Quantity is a numeric value tagged with its unit and dimensional family.
type Quantity struct {
	Value  float64 `json:"value"`
	Unit   Unit    `json:"unit"`
	Family Family  `json:"family"`
}

// Q builds a Quantity.
func Q(value float64, unit Unit, family Family) Quantity {
	return Quantity{Value: value, Unit: unit, Family: family}
}

// Zero reports whether the quantity is unset (no unit registered).
func (q Quantity) Zero() bool {
	return q.Unit == ""
}

// Base converts the quantity into its family's canonical base unit.
func (q Quantity) Base() (float64, error) {
	return Convert(q.Value, q.Unit, Base(q.Family), q.Family)
}

// In converts the quantity into the given unit.
func (q Quantity) In(unit Unit) (float64, error) {
	return Convert(q.Value, q.Unit, unit, q.Family)
}
