// Package model defines the typed contact form model consumed by the
// validator and renderers. Fields are produced from an OpenAPI request schema
// by internal/openapi/parser; required, format (email/number), minimum,
// maximum, minLength and maxLength map one to one onto the native constraint
// set a browser form control would enforce.
package model
