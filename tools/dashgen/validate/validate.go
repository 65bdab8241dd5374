// Package validate checks generated dashboards and rules for PromQL that does
// not parse or that references metrics the server never exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/ebay-lister/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings are
// reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a single PromQL expression and checks each selected metric
// name against known.
func Expr(expr string, known map[string]bool) Result {
	var res Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parsing %q: %v", expr, err))
		return res
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		switch {
		case vs.Name == "":
			res.Warnings = append(res.Warnings, fmt.Sprintf("%q: selector without a metric name", expr))
		case !known[vs.Name]:
			res.Errors = append(res.Errors, fmt.Sprintf("%q: unknown metric %s", expr, vs.Name))
		}
		return nil
	})

	return res
}

// Dashboard validates every query expression in dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	raw, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Errors = append(res.Errors, "dashboard has no query expressions")
	}
	for _, e := range exprs {
		res.merge(Expr(e, known))
	}
	return res
}

// Rules validates every expression in cr. Recording rules defined in cr are
// treated as known so alert rules may reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, r := range cr.Records() {
		all[r] = true
	}

	var res Result
	for _, e := range cr.Exprs() {
		res.merge(Expr(e, all))
	}
	return res
}

// collectExprs walks decoded JSON and returns every string stored under an
// "expr" key, sorted for stable output.
func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, e := range t {
			out = collectExprs(e, out)
		}
	}
	return out
}
