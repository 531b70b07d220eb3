package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/rs/zerolog/log"
	"github.com/wonny/marketdesk/internal/domain/market"
)

// symbolDoc is the indexed form of a SymbolMeta
type symbolDoc struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	AssetClass string `json:"asset_class"`
}

// SymbolIndex is an in-memory full-text index over symbol metadata
type SymbolIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	metas map[string]market.SymbolMeta
}

// NewSymbolIndex builds an index from metas
func NewSymbolIndex(metas []market.SymbolMeta) (*SymbolIndex, error) {
	idx := &SymbolIndex{}
	if err := idx.Rebuild(metas); err != nil {
		return nil, err
	}
	return idx, nil
}

// Rebuild replaces the index contents
func (s *SymbolIndex) Rebuild(metas []market.SymbolMeta) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	byID := make(map[string]market.SymbolMeta, len(metas))
	batch := index.NewBatch()
	for _, m := range metas {
		doc := symbolDoc{
			Symbol:     strings.ToLower(m.Symbol),
			Name:       m.Name(),
			AssetClass: string(m.AssetClass),
		}
		if err := batch.Index(m.Symbol, doc); err != nil {
			index.Close()
			return fmt.Errorf("failed to add %s to batch: %w", m.Symbol, err)
		}
		byID[m.Symbol] = m
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return fmt.Errorf("failed to execute batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = index
	s.metas = byID
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	log.Info().Int("symbols", len(metas)).Msg("Symbol index built")
	return nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	// Symbols match whole, names are tokenized
	docMapping.AddFieldMappingsAt("symbol", bleve.NewKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("asset_class", bleve.NewKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("name", bleve.NewTextFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Search returns up to limit symbols ranked by relevance.
// An optional class restricts results to one asset class.
func (s *SymbolIndex) Search(q string, class *market.AssetClass, limit int) ([]market.SymbolMeta, error) {
	q = strings.TrimSpace(q)
	if q == "" || limit < 1 {
		return []market.SymbolMeta{}, nil
	}
	lower := strings.ToLower(q)

	exact := bleve.NewTermQuery(lower)
	exact.SetField("symbol")
	exact.SetBoost(10.0)

	prefix := bleve.NewPrefixQuery(lower)
	prefix.SetField("symbol")
	prefix.SetBoost(5.0)

	name := bleve.NewMatchQuery(q)
	name.SetField("name")
	name.SetBoost(3.0)

	contains := bleve.NewWildcardQuery("*" + lower + "*")
	contains.SetField("symbol")
	contains.SetBoost(2.0)

	namePrefix := bleve.NewPrefixQuery(lower)
	namePrefix.SetField("name")
	namePrefix.SetBoost(1.5)

	var combined query.Query = bleve.NewDisjunctionQuery(exact, prefix, name, contains, namePrefix)
	if class != nil {
		classQuery := bleve.NewTermQuery(string(*class))
		classQuery.SetField("asset_class")
		combined = bleve.NewConjunctionQuery(combined, classQuery)
	}

	req := bleve.NewSearchRequest(combined)
	req.Size = limit

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return []market.SymbolMeta{}, nil
	}

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]market.SymbolMeta, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if m, ok := s.metas[hit.ID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Len returns the number of indexed symbols
func (s *SymbolIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.metas)
}

// Close releases the index
func (s *SymbolIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}
