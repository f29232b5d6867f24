// Package shellquote provides pure string transformations for composing shell
// pipelines: literal single-argument quoting, whole-expression escaping that
// keeps pipe operators meaningful, and pipeline joining. Nothing in this
// package touches the operating system.
package shellquote
