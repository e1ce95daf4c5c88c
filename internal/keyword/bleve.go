// Package keyword provides the Bleve index over document titles and abstracts
// that backs the sidebar search.
package keyword

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/shirushi/internal/models"
)

// Index wraps a Bleve index of document summaries.
type Index struct {
	index bleve.Index
}

// Result is a single search hit.
type Result struct {
	ID    string  `json:"_id"`
	Title string  `json:"original_title"`
	Score float64 `json:"score"`
}

// indexedDocument is the shape handed to Bleve. Only title and abstract are
// searchable; the abstract is not returned in results.
type indexedDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// NewIndex creates or opens a Bleve index at path. An existing index is
// reused so unchanged documents are not re-indexed on restart; remove the
// index directory to force a rebuild after mapping changes.
func NewIndex(path string) (*Index, error) {
	if _, err := os.Stat(path); err == nil {
		idx, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open index: %w", openErr)
		}
		return &Index{index: idx}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so short ticker
	// and company names match exactly.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("abstract", textFieldMapping)
	docMapping.AddFieldMappingsAt("id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("document", docMapping)
	im.DefaultType = "document"
	im.DefaultMapping = docMapping

	idx, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Index adds or replaces a document in the index.
func (i *Index) Index(doc *models.Document) error {
	return i.index.Index(doc.ID, &indexedDocument{
		ID:       doc.ID,
		Title:    doc.Title,
		Abstract: doc.Abstract,
	})
}

// Delete removes a document from the index.
func (i *Index) Delete(id string) error {
	return i.index.Delete(id)
}

// Search runs a match query over titles and abstracts and returns up to
// limit hits, best first. Title matches are boosted by titleBoost when it
// is greater than 1.
func (i *Index) Search(q string, limit int, titleBoost float64) ([]Result, error) {
	titleQuery := bleve.NewMatchQuery(q)
	titleQuery.SetField("title")
	if titleBoost > 1 {
		titleQuery.SetBoost(titleBoost)
	}
	abstractQuery := bleve.NewMatchQuery(q)
	abstractQuery.SetField("abstract")

	req := bleve.NewSearchRequest(query.NewDisjunctionQuery([]query.Query{titleQuery, abstractQuery}))
	req.Size = limit
	req.Fields = []string{"title"}

	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	out := make([]Result, 0, len(results.Hits))
	for _, hit := range results.Hits {
		r := Result{ID: hit.ID, Score: hit.Score}
		if title, ok := hit.Fields["title"].(string); ok {
			r.Title = title
		}
		out = append(out, r)
	}
	return out, nil
}

// DocCount returns the number of indexed documents.
func (i *Index) DocCount() (uint64, error) {
	return i.index.DocCount()
}

// Close closes the index.
func (i *Index) Close() error {
	return i.index.Close()
}
