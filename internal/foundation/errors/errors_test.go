package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "refdoc.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "refdoc.yaml" {
			t.Errorf("expected context file=refdoc.yaml, got %v", file)
		}
	})

	t.Run("Error string is stable", func(t *testing.T) {
		err := BuildError("duplicate link name").
			WithContext("name", "Shape").
			WithContext("existing", "Class_Shape.html").
			WithCause(ErrDuplicateName).
			Build()

		want := "[build:fatal] duplicate link name (existing=Class_Shape.html, name=Shape): name already registered in link table"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !HasSeverity(err, SeverityFatal) {
			t.Error("expected error to have fatal severity")
		}
		if err.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("stage render: %w", ExternalPageRender("Home", "https://example.com"))

		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(err))
		}
		if !errors.Is(err, ErrExternalPageRender) {
			t.Error("expected sentinel to be reachable")
		}
		if GetSeverity(fmt.Errorf("plain")) != SeverityError {
			t.Error("expected default severity for unclassified errors")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "write failed").
			Warning().
			WithRetry(RetryImmediate).
			WithContext("path", "out/Class_Shape.html").
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !err.CanRetry() {
			t.Error("expected immediate retry to allow retry")
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
	})

	t.Run("WithContext does not mutate the receiver", func(t *testing.T) {
		base := BuildError("render failed").Build()
		derived := base.WithContext("entity", "Shape")

		if _, ok := base.Context().Get("entity"); ok {
			t.Error("expected base context to be unchanged")
		}
		if v, _ := derived.Context().GetString("entity"); v != "Shape" {
			t.Errorf("expected derived entity=Shape, got %q", v)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal, RetryNever},
			{"DocsError", DocsError("test"), CategoryDocs, SeverityFatal, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryNever},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestContractErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		category ErrorCategory
	}{
		{"duplicate", DuplicateName("A", "Class_A.html", "Enum_A.html"), ErrDuplicateName, CategoryBuild},
		{"returns", MultipleReturns("f", 2), ErrMultipleReturns, CategoryDocs},
		{"params", ParameterOrder("f", "a.b", "a"), ErrParameterOrder, CategoryDocs},
		{"external", ExternalPageRender("Home", "https://x"), ErrExternalPageRender, CategoryInternal},
		{"unsupported", UnsupportedEntity("x", "widget"), ErrUnsupportedEntity, CategoryInternal},
		{"template", TemplatePlaceholder("Template.html", "$$$MAIN$$$", 0), ErrTemplatePlaceholder, CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected %v to wrap %v", tt.err, tt.sentinel)
			}
			if GetCategory(tt.err) != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, GetCategory(tt.err))
			}
			if !HasSeverity(tt.err, SeverityFatal) {
				t.Errorf("expected fatal severity for %v", tt.err)
			}
		})
	}
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		_, exists3 := ctx.Get("nonexistent")
		if exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := make(ErrorContext)
		ctx1 = ctx1.Set("key1", "value1")
		ctx1 = ctx1.Set("shared", "original")

		ctx2 := make(ErrorContext)
		ctx2 = ctx2.Set("key2", "value2")
		ctx2 = ctx2.Set("shared", "overridden")

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" {
			t.Errorf("expected key1=value1, got %s", value1)
		}
		if value2 != "value2" {
			t.Errorf("expected key2=value2, got %s", value2)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
	})
}
