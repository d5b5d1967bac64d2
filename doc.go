// Package guardrail is a declarative, rule-based validation middleware for
// HTTP request pipelines. Callers describe validation requirements for the
// three request sections — body, path parameters and query parameters — as a
// mapping from field name to rule specifications, and mount the resulting
// middleware in front of their handlers.
//
// # Usage
//
//	schema := guardrail.Schema{
//		Body: map[string]any{
//			"title":   "required|max:255",
//			"content": "required|min:10",
//		},
//	}
//
//	r := chi.NewRouter()
//	r.With(guardrail.Make(schema)).Post("/posts", createPost)
//
// Rules are written in the "name:argument" mini-language joined by "|", as
// configured rule instances (rules.NewBetween().Min(5).Max(15)), or as
// inline CheckFunc predicates. The full catalog of built-ins lives in the
// rules package; applications register their own through rules.Set.
//
// By default a failing request is aborted with a structured 422 payload:
//
//	{"status":422,"errors":{"body":{"title":{"required":"The title field is required"}}}}
//
// With Factory.DoNotThrow the request always continues and downstream
// handlers read the {errors, validated} result via ResultFrom.
//
// Rule evaluation itself — concurrent per (field, rule) execution,
// short-circuit markers, error aggregation — lives in the engine package.
package guardrail
