package errors

import stderrors "errors"

// Build-contract sentinels. A run that hits any of these aborts; they are
// always wrapped in a fatal ClassifiedError carrying the offending names.
var (
	ErrDuplicateName       = stderrors.New("name already registered in link table")
	ErrDuplicateLocation   = stderrors.New("output location already taken")
	ErrMultipleReturns     = stderrors.New("more than one return entry")
	ErrParameterOrder      = stderrors.New("sub-parameter declared before its parent")
	ErrExternalPageRender  = stderrors.New("render requested for external page")
	ErrUnsupportedEntity   = stderrors.New("no renderer for entity kind")
	ErrTemplatePlaceholder = stderrors.New("template placeholder count mismatch")
)

// DuplicateName reports a second registration of name in the link table.
func DuplicateName(name, existing, attempted string) *ClassifiedError {
	return BuildError("duplicate link name").
		WithCause(ErrDuplicateName).
		WithContext("name", name).
		WithContext("existing", existing).
		WithContext("attempted", attempted).
		Build()
}

// DuplicateLocation reports two generated files that would share one output location.
func DuplicateLocation(location, existing, attempted string) *ClassifiedError {
	return BuildError("duplicate output location").
		WithCause(ErrDuplicateLocation).
		WithContext("location", location).
		WithContext("existing", existing).
		WithContext("attempted", attempted).
		Build()
}

// MultipleReturns reports a function-like doclet with more than one return entry.
func MultipleReturns(doclet string, count int) *ClassifiedError {
	return DocsError("invalid return descriptor").
		WithCause(ErrMultipleReturns).
		WithContext("doclet", doclet).
		WithContext("count", count).
		Build()
}

// ParameterOrder reports a dotted parameter whose namespace was not declared earlier.
func ParameterOrder(doclet, parameter, namespace string) *ClassifiedError {
	return DocsError("invalid parameter nesting").
		WithCause(ErrParameterOrder).
		WithContext("doclet", doclet).
		WithContext("parameter", parameter).
		WithContext("namespace", namespace).
		Build()
}

// ExternalPageRender reports an attempt to render a link-only page.
func ExternalPageRender(page, url string) *ClassifiedError {
	return InternalError("external page cannot be rendered").
		WithCause(ErrExternalPageRender).
		WithContext("page", page).
		WithContext("url", url).
		Build()
}

// UnsupportedEntity reports a render request for an entity kind with no renderer.
func UnsupportedEntity(name string, kind any) *ClassifiedError {
	return InternalError("unsupported entity").
		WithCause(ErrUnsupportedEntity).
		WithContext("entity", name).
		WithContext("kind", kind).
		Build()
}

// TemplatePlaceholder reports a template that does not contain a placeholder exactly once.
func TemplatePlaceholder(path, token string, count int) *ClassifiedError {
	return ValidationError("invalid template").
		WithCause(ErrTemplatePlaceholder).
		WithContext("path", path).
		WithContext("token", token).
		WithContext("count", count).
		Build()
}
