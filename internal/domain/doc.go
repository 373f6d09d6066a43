// Package domain models near-Earth object (NEO) and close-approach data.
//
// # Data Sources
//
// NEO facts come from the JPL Small-Body Database as a CSV export with one
// row per object. Close-approach facts come from the JPL SBDB Close-Approach
// Data API as a JSON document whose "data" key holds fixed-width row arrays.
// The extractor in internal/adapter/file turns both into [RawNEO] and
// [RawApproach] records; this package turns those into typed entities.
//
// # SBDB Data Conventions
//
// Designation ("pdes" / "des"):
//
//	Primary designation, e.g. "433" or "2020 AB". Case-sensitive and used
//	verbatim as the identity key across both datasets. Never empty.
//
// Name ("name"):
//
//	IAU name, e.g. "Eros". Most objects have none; an empty cell maps to a
//	nil Name rather than "".
//
// Diameter ("diameter"):
//
//	Kilometers as a decimal. Frequently empty; an empty cell maps to NaN,
//	which never equals itself and never satisfies a numeric comparison.
//
// Hazard flag ("pha"):
//
//	"Y" means potentially hazardous. "N", empty, and any other value mean
//	not hazardous. Unrecognized values are not errors.
//
// Close-approach date ("cd"):
//
//	"YYYY-Mon-DD HH:MM" in TDB, treated as UTC, e.g. "1900-Jan-01 00:11".
//	Output uses "YYYY-MM-DD HH:MM"; seconds are never present in the source
//	and never written.
//
// Distance ("dist") and velocity ("v_rel"):
//
//	Nominal approach distance in astronomical units and relative velocity in
//	km/s, as decimals.
package domain
