package domain

// Document is one entry of the reference corpus.
type Document struct {
	DocID   string
	SrcText string
	// RefText is empty when the corpus carries no reference for the document.
	RefText string
}

// Hypothesis is one model output read from the hypothesis file.
type Hypothesis struct {
	DocID string
	Text  string
}

// FailedMarker prefixes hypotheses whose translation request failed upstream.
const FailedMarker = "FAILED"

// Segment is one paragraph-aligned (source, hypothesis, reference) triple.
type Segment struct {
	DocID  string `json:"doc_id"`
	ParInd int    `json:"par_ind"`
	Src    string `json:"src"`
	Hyp    string `json:"hyp"`
	Ref    string `json:"ref"`
}

// Key identifies a segment across runs.
func (s Segment) Key() string {
	return SegmentKey(s.DocID, s.ParInd)
}
