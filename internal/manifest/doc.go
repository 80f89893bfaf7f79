// Package manifest loads skill manifests and assistant skills files, checks
// that a manifest carries the fields a host assistant needs to invoke it, and
// serializes the skills collection back to disk form.
//
// Both documents are JSON. A manifest is a single object; an assistant skills
// file is an array of manifests. Unknown fields and key order are preserved
// through a load/marshal cycle.
package manifest
