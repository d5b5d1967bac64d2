package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/guardrail/rules"
)

var ctx = context.Background()

func TestRequired(t *testing.T) {
	t.Parallel()

	rule := &rules.Required{}

	t.Run("passes for non-empty string", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"title": "hello"}, "title", ""))
	})

	t.Run("fails for empty string", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"title": ""}, "title", ""))
	})

	t.Run("fails for whitespace-only string", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"title": "   "}, "title", ""))
	})

	t.Run("fails for absent field", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{}, "title", ""))
	})

	t.Run("passes for non-empty array", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"tags": []any{"a"}}, "tags", ""))
	})

	t.Run("fails for empty array", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"tags": []any{}}, "tags", ""))
	})

	t.Run("passes for non-empty object", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"meta": map[string]any{"k": "v"}}, "meta", ""))
	})

	t.Run("fails for empty object", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"meta": map[string]any{}}, "meta", ""))
	})

	t.Run("fails for scalar number", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"n": float64(5)}, "n", ""))
	})

	t.Run("fails for null", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"title": nil}, "title", ""))
	})

	t.Run("renders the default message", func(t *testing.T) {
		fe := rule.Message(nil, "title", "title", "", "")
		assert.Equal(t, "required", fe.Name)
		assert.Equal(t, "The title field is required", fe.Message)
	})

	t.Run("custom template wins", func(t *testing.T) {
		fe := rule.Message(nil, "title", "post title", "{field} missing!", "")
		assert.Equal(t, "post title missing!", fe.Message)
	})
}

func TestPresent(t *testing.T) {
	t.Parallel()

	rule := &rules.Present{}

	t.Run("passes when the key exists", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"flag": "x"}, "flag", ""))
	})

	t.Run("passes for explicit null", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"flag": nil}, "flag", ""))
	})

	t.Run("fails when the key is absent", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{}, "flag", ""))
	})
}

func TestNullable(t *testing.T) {
	t.Parallel()

	rule := &rules.Nullable{}

	t.Run("passes for explicit null", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"tags": nil}, "tags", ""))
	})

	t.Run("passes for any defined value", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"tags": []any{1}}, "tags", ""))
	})

	t.Run("fails when the key is absent", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{}, "tags", ""))
	})
}

func TestProhibited(t *testing.T) {
	t.Parallel()

	rule := &rules.Prohibited{}

	t.Run("passes when absent", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{}, "secret", ""))
	})

	t.Run("passes for null", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"secret": nil}, "secret", ""))
	})

	t.Run("passes for empty string", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"secret": ""}, "secret", ""))
	})

	t.Run("passes for empty array", func(t *testing.T) {
		assert.True(t, rule.Validate(ctx, map[string]any{"secret": []any{}}, "secret", ""))
	})

	t.Run("fails for non-empty string", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"secret": "x"}, "secret", ""))
	})

	t.Run("fails for present number", func(t *testing.T) {
		assert.False(t, rule.Validate(ctx, map[string]any{"secret": float64(1)}, "secret", ""))
	})
}
