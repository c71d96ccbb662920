// Package settings loads the JSON benchmark-configuration document and
// exposes typed, key-by-key access to it. The document keeps the shape the
// web frontend produces: global defaults at the top level and a
// `task_option` array whose elements override them per task.
//
// Parsing goes through the HCL JSON reader so values arrive as cty values;
// the accessors on Document then perform the integer/string coercion the
// task builder relies on. Absence of a key is a first-class, recoverable
// condition (ErrKeyNotFound) because the same accessor serves both
// mandatory and optional fields.
package settings
