package contact

import _ "embed"

// DefaultOperationID is the operation in the embedded schema that describes
// the form.
const DefaultOperationID = "submitContact"

//go:embed schema/contact.yaml
var defaultSchema []byte

// DefaultSchema returns a copy of the embedded OpenAPI document.
func DefaultSchema() []byte {
	return append([]byte(nil), defaultSchema...)
}
