// Package schema embeds the JSON Schema of the install manifest and lints documents
// against it with santhosh-tekuri/jsonschema.
//
// The strict decoder in the manifest package is authoritative; the schema is published
// for editors and tooling, and Lint offers a second, advisory opinion on a document.
package schema
