// Package connection holds the built-in EditConnectionCostPlugin
// implementation from spec.md §4.6/§4.9: InhibitConnection.
package connection

import (
	"github.com/hayashi-nlp/sudachigo/dictionary"
	"github.com/hayashi-nlp/sudachigo/plugin"
)

// InhibitConnection forces a fixed set of (leftId, rightId) connection
// matrix cells to dictionary.Inhibited at dictionary-load time (spec.md
// §4.9's "Dictionary load" stage). It is typically used to suppress
// specific word-boundary combinations the base dictionary's cost matrix
// doesn't otherwise forbid.
type InhibitConnection struct {
	Pairs [][2]int16
}

var _ plugin.EditConnectionCostPlugin = (*InhibitConnection)(nil)

// Edit implements plugin.EditConnectionCostPlugin.
func (p *InhibitConnection) Edit(g *dictionary.Grammar) error {
	for _, pair := range p.Pairs {
		if err := g.SetConnect(pair[0], pair[1], dictionary.Inhibited); err != nil {
			return err
		}
	}
	return nil
}
