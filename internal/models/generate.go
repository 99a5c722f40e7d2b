package models

// GenerateRequest is one multimodal, schema-constrained model call.
type GenerateRequest struct {
	System     string
	UserText   string
	Image      Payload
	SchemaName string
	Schema     *Schema
}
