// Package transform rewrites inventories according to a YAML configuration:
// field renamings, kept and excluded fields, and required values.
//
// Example configuration:
//
//	field_renamings:
//	  'Directory/Location': about_resource
//	  foo: bar
//	required_fields:
//	  - version
//	field_filters:
//	  - about_resource
//	  - name
//	  - version
//	exclude_fields:
//	  - temp
//
// Renamings apply first; every other setting names fields after renaming.
package transform
