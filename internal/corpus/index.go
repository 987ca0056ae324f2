package corpus

import (
	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
)

// Index maps doc_id to its source and reference text.
type Index struct {
	docs map[string]domain.Document
}

func NewIndex() *Index {
	return &Index{docs: make(map[string]domain.Document)}
}

// Put stores doc, replacing any earlier document with the same id.
func (i *Index) Put(doc domain.Document) {
	i.docs[doc.DocID] = doc
}

// Lookup returns an *apperr.NotFoundError when docID is not in the corpus.
func (i *Index) Lookup(docID string) (domain.Document, error) {
	doc, ok := i.docs[docID]
	if !ok {
		return domain.Document{}, apperr.NewNotFound("document", docID)
	}
	return doc, nil
}

func (i *Index) Len() int {
	return len(i.docs)
}
