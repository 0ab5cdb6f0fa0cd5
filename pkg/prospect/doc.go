// Package prospect defines the prospect record and its field enumeration.
//
// A Prospect is a company/contact pair carrying precomputed acquisition-fit
// scores. Scores and counts arrive either as JSON numbers or as numeric
// strings, so they are held in the lenient Number type:
//
//	var p prospect.Prospect
//	_ = json.Unmarshal([]byte(`{"Boomer Score": "72"}`), &p)
//	p.Boomer() // 72
//
// Coercion never fails. Missing, null, and non-numeric values read as 0.
//
// # Fields
//
// Columns are addressed through an explicit enumeration rather than by
// reflecting on struct tags. Each Field knows its identifier (the dataset
// key, also used as the CSV header), a short display label, and how to read
// and render itself:
//
//	f, _ := prospect.LookupField(prospect.FieldCombinedAcquisitionScore)
//	f.Raw(&p)     // "80.25" as stored
//	f.Display(&p) // "80.3"
//
// The "rating" column is a pseudo-field. Ratings live in the session's view
// state keyed by Prospect.Key, not on the record.
package prospect
