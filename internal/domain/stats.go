package domain

import "strconv"

// BuildStats holds the counters reported after segments are built.
type BuildStats struct {
	Total    int `json:"total"`
	Skipped  int `json:"skipped"`
	Segments int `json:"segments"`
}

func SegmentKey(docID string, parInd int) string {
	return docID + "#" + strconv.Itoa(parInd)
}
