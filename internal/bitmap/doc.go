// Package bitmap provides the row-position sets used while selecting
// candidates.
//
// A Rows set records which input positions survived filtering. Positions are
// added out of order by parallel workers and read back in ascending order,
// which is what lets the candidate filter preserve input order after a
// fan-out. The set is backed by a 32-bit Roaring bitmap.
//
// Sets are pooled:
//
//	rows := bitmap.Get()
//	defer bitmap.Put(rows)
//
//	rows.Add(7)
//	rows.Add(3)
//	for pos := range rows.All() {
//	    // 3, then 7
//	}
package bitmap
