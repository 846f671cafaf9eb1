// Package classify sorts referenced font family names into the system,
// commercial and free buckets.
//
// The rules are table driven:
//
//  1. A name is a system font when, lowercased and trimmed, it equals a
//     known system family or is contained in one ("Palatino" matches
//     "Palatino Linotype").
//  2. Otherwise it is commercial when it mentions a commercial foundry or
//     marketplace (adobe, linotype, monotype, myfonts).
//  3. Everything else is a free candidate.
//
// The containment check runs one way only. A referenced "Arial Nova" is
// not a system font just because "Arial" is.
package classify
