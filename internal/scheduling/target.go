package scheduling

// Target identifies what a visit request is for: a specific property or a
// general consultation at the agency. A general target is exempt from travel
// checks and never earns proximity bonuses.
type Target struct {
	propertyID string
}

// PropertyTarget returns a Target for the given property id.
func PropertyTarget(id string) Target {
	return Target{propertyID: id}
}

// GeneralTarget returns the Target for a consultation with no specific
// property.
func GeneralTarget() Target {
	return Target{}
}

// IsGeneral reports whether the target carries no property.
func (t Target) IsGeneral() bool {
	return t.propertyID == ""
}

// PropertyID returns the property id and whether one is set.
func (t Target) PropertyID() (string, bool) {
	return t.propertyID, t.propertyID != ""
}
