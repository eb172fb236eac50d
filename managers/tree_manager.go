package managers

import (
	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/plugins"
)

// treeManager holds the transformer pipeline applied before SQL generation.
type treeManager struct {
	transformers []plugins.Transformer
}

// addTransformer appends a transformer plugin to the pipeline.
func (tm *treeManager) addTransformer(t plugins.Transformer) {
	tm.transformers = append(tm.transformers, t)
}

// Transformers returns the registered transformer pipeline.
func (tm *treeManager) Transformers() []plugins.Transformer {
	return tm.transformers
}

// toSQLParams resets the visitor's collected params (if it has any), runs
// generate, and returns the SQL with the params it bound.
func toSQLParams(v nodes.Visitor, generate func(nodes.Visitor) (string, error)) (string, []any, error) {
	p, _ := v.(nodes.Parameterizer)
	if p != nil {
		p.Reset()
	}

	sql, err := generate(v)
	if err != nil {
		return "", nil, err
	}

	if p != nil {
		return sql, p.Params(), nil
	}
	return sql, nil, nil
}
