package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardrail/engine"
	"github.com/dmitrymomot/guardrail/rules"
)

func TestValidateAggregation(t *testing.T) {
	t.Parallel()

	t.Run("collects one error per failing rule per field", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{
				"title":   "required|max:255",
				"content": "required|min:10",
			},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "", "content": "Short"},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]map[string]string{
			"title":   {"required": "The title field is required"},
			"content": {"min": "The content must have a min length of 10"},
		}, result.Errors.Body)
		assert.Empty(t, result.Validated.Body)
	})

	t.Run("passing fields are echoed in validated", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{
				"title":   "required|max:255",
				"content": "required|min:10",
			},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "A post", "content": "Long enough content"},
		})
		require.NoError(t, err)

		assert.True(t, result.Errors.IsEmpty())
		assert.Equal(t, map[string]any{
			"title":   "A post",
			"content": "Long enough content",
		}, result.Validated.Body)
	})

	t.Run("fields with errors never appear in validated", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{
				// required passes, min fails: the field must land in errors only.
				"content": "required|min:100",
			},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"content": "present but short"},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body, "content")
		assert.NotContains(t, result.Validated.Body, "content")
	})

	t.Run("validating twice yields identical results", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"title": "required|alpha", "n": "numeric"},
		})
		req := engine.Request{Body: map[string]any{"title": "abc123", "n": "7"}}

		first, err := v.Validate(context.Background(), req)
		require.NoError(t, err)
		second, err := v.Validate(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("sections are validated independently", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body:   map[string]any{"title": "required"},
			Params: map[string]any{"id": "numeric"},
			Query:  map[string]any{"page": "numeric"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body:   map[string]any{"title": ""},
			Params: map[string]any{"id": "abc"},
			Query:  map[string]any{"page": "x"},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body, "title")
		assert.Contains(t, result.Errors.Params, "id")
		assert.Contains(t, result.Errors.Query, "page")
	})

	t.Run("sections without data are skipped", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body:  map[string]any{"title": "required"},
			Query: map[string]any{"page": "required"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.NoError(t, err)

		assert.True(t, result.Errors.IsEmpty())
		assert.Nil(t, result.Errors.Query)
	})
}

func TestValidateCustomFunctions(t *testing.T) {
	t.Parallel()

	t.Run("failing check contributes its own descriptor", func(t *testing.T) {
		noEmptyItems := engine.CheckFunc(func(_ context.Context, data map[string]any, field string) (bool, *rules.FieldError) {
			items, _ := data[field].([]any)
			for _, item := range items {
				if s, ok := item.(string); ok && strings.TrimSpace(s) == "" {
					return false, &rules.FieldError{Name: "empty-items", Message: "Tags cannot have empty items"}
				}
			}
			return true, nil
		})

		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": []any{"is_array", noEmptyItems}},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"tags": []any{"a", "b", ""}},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"empty-items": "Tags cannot have empty items"}, result.Errors.Body["tags"])
	})

	t.Run("failing without a descriptor reports invalid-callback", func(t *testing.T) {
		bad := engine.CheckFunc(func(context.Context, map[string]any, string) (bool, *rules.FieldError) {
			return false, nil
		})

		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": []any{"is_array", bad}},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"tags": []any{"a"}},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"invalid-callback": "The user provided callback didn't provided a valid return value. Array needed.",
		}, result.Errors.Body["tags"])
	})

	t.Run("functions of the wrong shape report invalid-callback", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": []any{func() bool { return true }}},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"tags": []any{"a"}},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body["tags"], "invalid-callback")
	})

	t.Run("panicking check surfaces as an engine error", func(t *testing.T) {
		boom := engine.CheckFunc(func(context.Context, map[string]any, string) (bool, *rules.FieldError) {
			panic("boom")
		})

		v := engine.New(engine.Schema{Body: map[string]any{"x": []any{boom}}})

		_, err := v.Validate(context.Background(), engine.Request{Body: map[string]any{"x": 1}})
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrCheckPanic)
	})
}

func TestValidateInvalidSpecs(t *testing.T) {
	t.Parallel()

	t.Run("bare unclassifiable spec aborts with an engine error", func(t *testing.T) {
		v := engine.New(engine.Schema{Body: map[string]any{"title": 123}})

		_, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrInvalidRuleSpec)
	})

	t.Run("invalid spec inside a slice degrades to a field error", func(t *testing.T) {
		v := engine.New(engine.Schema{Body: map[string]any{"title": []any{"required", 123}}})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Invalid rule 123 applied to title", result.Errors.Body["title"]["123"])
	})

	t.Run("unknown rule name degrades to a field error", func(t *testing.T) {
		v := engine.New(engine.Schema{Body: map[string]any{"title": "nope"}})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Invalid rule nope applied to title", result.Errors.Body["title"]["nope"])
	})

	t.Run("named rule with empty argument is not an argument form", func(t *testing.T) {
		v := engine.New(engine.Schema{Body: map[string]any{"title": "min:"}})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body["title"], "min:")
	})
}

func TestValidateShortCircuits(t *testing.T) {
	t.Parallel()

	t.Run("nullable skips remaining rules for a null value", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": "nullable|is_array|min:2"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"tags": nil},
		})
		require.NoError(t, err)

		assert.True(t, result.Errors.IsEmpty())
		assert.Contains(t, result.Validated.Body, "tags")
	})

	t.Run("nullable with a defined value still runs the chain", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": "nullable|is_array|min:2"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"tags": "not an array"},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body["tags"], "is_array")
	})

	t.Run("nullable fails for an absent field", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"tags": "nullable|is_array"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"other": 1},
		})
		require.NoError(t, err)

		assert.Contains(t, result.Errors.Body["tags"], "nullable")
	})

	t.Run("bail stops the chain after the first failure", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"age": "bail|numeric|min:18"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"age": "abc"},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"numeric": "The age field must be a number",
		}, result.Errors.Body["age"])
	})

	t.Run("without bail every failing rule contributes", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"age": "numeric|min:18"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"age": "abc"},
		})
		require.NoError(t, err)

		assert.Len(t, result.Errors.Body["age"], 2)
	})

	t.Run("stop on first error reports a single failure", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{
				"alpha": "required",
				"beta":  "required",
			},
		}, engine.WithStopOnFirstError())

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"alpha": "", "beta": ""},
		})
		require.NoError(t, err)

		// Fields evaluate in sorted order, so alpha's failure is the one
		// reported, alone and without validated data.
		assert.Equal(t, map[string]map[string]string{
			"alpha": {"required": "The alpha field is required"},
		}, result.Errors.Body)
		assert.Empty(t, result.Validated.Body)
	})

	t.Run("stop on first error passes through clean requests", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"title": "required"},
		}, engine.WithStopOnFirstError())

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "ok"},
		})
		require.NoError(t, err)

		assert.True(t, result.Errors.IsEmpty())
		assert.Equal(t, map[string]any{"title": "ok"}, result.Validated.Body)
	})
}

func TestValidateCustomization(t *testing.T) {
	t.Parallel()

	t.Run("message lookup prefers field.rule over rule", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"title": "required", "name": "required"},
			Messages: map[string]string{
				"title.required": "A post needs a title",
				"required":       "{field} cannot be blank",
			},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "", "name": ""},
		})
		require.NoError(t, err)

		assert.Equal(t, "A post needs a title", result.Errors.Body["title"]["required"])
		assert.Equal(t, "name cannot be blank", result.Errors.Body["name"]["required"])
	})

	t.Run("attributes relabel fields in messages", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body:       map[string]any{"title": "required"},
			Attributes: map[string]string{"title": "post title"},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": ""},
		})
		require.NoError(t, err)

		assert.Equal(t, "The post title field is required", result.Errors.Body["title"]["required"])
	})

	t.Run("custom rules registered on the set resolve by name", func(t *testing.T) {
		set := rules.NewSet()
		set.Add(&evenRule{})

		v := engine.New(engine.Schema{
			Body: map[string]any{"count": "even"},
		}, engine.WithRuleSet(set))

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"count": float64(3)},
		})
		require.NoError(t, err)

		assert.Equal(t, "The count field must be even", result.Errors.Body["count"]["even"])
	})

	t.Run("configured rule instances validate directly", func(t *testing.T) {
		v := engine.New(engine.Schema{
			Body: map[string]any{"title": []any{rules.NewBetween().Min(5).Max(15)}},
		})

		result, err := v.Validate(context.Background(), engine.Request{
			Body: map[string]any{"title": "Hel"},
		})
		require.NoError(t, err)

		assert.Equal(t, "The title field must be between 5 and 15", result.Errors.Body["title"]["between"])
	})
}

// evenRule is a test-only custom rule.
type evenRule struct{}

func (r *evenRule) Name() string { return "even" }

func (r *evenRule) Validate(_ context.Context, data map[string]any, field, _ string) bool {
	n, ok := data[field].(float64)
	return ok && int(n)%2 == 0
}

func (r *evenRule) Message(_ map[string]any, _, label, custom, _ string) rules.FieldError {
	msg := custom
	if msg == "" {
		msg = "The " + label + " field must be even"
	}
	return rules.FieldError{Name: r.Name(), Message: msg}
}
