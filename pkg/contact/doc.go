// Package contact implements the contact form: live per-field validation,
// whole-form submission and the escaped preview of accepted values.
//
// The form definition is an OpenAPI 3 document (schema/contact.yaml by
// default) whose request schema is converted into a model.FormModel. Nothing
// is persisted; a valid submission only produces a preview and an empty form.
package contact
