// Package gcwiki models Google Code wiki pages: the `#key value` header
// block, the body that follows it, and the CamelCase page naming convention
// that GitHub wikis spell with hyphens.
package gcwiki
