package models

// Schema is a provider-neutral JSON schema node. Each model backend converts
// it to its own representation.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}
