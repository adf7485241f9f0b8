package search

import "github.com/Ramsai26/new-project-personal-brain/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results
// during a retrieval.
type RetrievalMonitor interface {
	Start(query string)
	AfterVectorSearch(results []*core.SearchResult)
	AfterSynthesis(summary string)
	SynthesisFailed(err error)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterSynthesis(_ string)                  {}
func (n *noopMonitor) SynthesisFailed(_ error)                  {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)            {}
