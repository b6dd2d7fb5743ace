package linkml

// SchemaDefinition is a LinkML schema document.
type SchemaDefinition struct {
	ID              string
	Name            string
	Description     string
	Prefixes        []Prefix
	Imports         []string
	DefaultCURIMaps []string
	DefaultRange    string
	// DefaultPrefix is omitted from the output when empty.
	DefaultPrefix string
	Classes       []*ClassDefinition
	Enums         []*EnumDefinition
}

// ClassDefinition is a LinkML class.
type ClassDefinition struct {
	Name        string
	ClassURI    string
	Attributes  []*SlotDefinition
	IsA         string
	Description string
}

// SlotDefinition is a LinkML attribute, an inline slot of a class.
type SlotDefinition struct {
	Name        string
	SlotURI     string
	Range       string
	Multivalued bool
	Required    bool
	Description string
	// EqualsString carries a fixed attribute value.
	EqualsString string
}

// EnumDefinition is a LinkML enumeration.
type EnumDefinition struct {
	Name              string
	EnumURI           string
	Description       string
	PermissibleValues []*PermissibleValue
}

// PermissibleValue is one value of an enumeration.
type PermissibleValue struct {
	Text        string
	Description string
	Meaning     string
}

// Class returns the class definition with the given name.
func (s *SchemaDefinition) Class(name string) (*ClassDefinition, bool) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Enum returns the enum definition with the given name.
func (s *SchemaDefinition) Enum(name string) (*EnumDefinition, bool) {
	for _, e := range s.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Attribute returns the attribute with the given name.
func (c *ClassDefinition) Attribute(name string) (*SlotDefinition, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Value returns the permissible value with the given text.
func (e *EnumDefinition) Value(text string) (*PermissibleValue, bool) {
	for _, v := range e.PermissibleValues {
		if v.Text == text {
			return v, true
		}
	}
	return nil, false
}
