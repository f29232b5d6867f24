// Package catalog loads saved pipeline definitions from YAML so frequently
// used pipelines can be invoked by name instead of retyped.
package catalog
