// Package catalogue defines the immutable correction pattern table the
// synthesis engine selects from.
//
// A Pattern maps a gate key to one correction recipe tagged with a
// strategy kind and a priority tier. Priority bands partition the four
// strategies so that ties only ever occur within one strategy kind, where
// catalogue insertion order is the stable tie-break.
//
// Catalogues are explicit values: construct one with New (or Default for
// the built-in UK set, or LoadDir for user-supplied CUE files) and pass
// it by reference into the loop. There is no package-level registry and
// no mutation after construction - two lookups for the same key always
// return identical slices, which the determinism hash depends on.
package catalogue
