// Package autocomplete turns the Fallout REST API search envelope into the
// flat {value, id} option list an autocomplete widget consumes.
//
// The package is pure: Transform and DecodeEnvelope never touch the network.
// Bindings describe which endpoint a widget searches and how its records
// are labelled; Tracker keeps only the newest query of each widget alive.
package autocomplete
