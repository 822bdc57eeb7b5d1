// Package transform reshapes wide tabular input into normalized rows.
//
// The metro home-value source is wide format: one row per region, one
// column per month. WideToLong emits one dimension row per input row and
// one fact row per non-blank period cell. Bad cells are skipped and
// counted, never emitted as null facts; bad region keys skip the whole
// row. ListingFromRecord builds typed property listings from parsed TSV
// records.
//
// Typed structs are constructed here, at the parser boundary; downstream
// packages never see untyped maps.
package transform
