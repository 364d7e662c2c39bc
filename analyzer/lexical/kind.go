package lexical

// BindingKind describes how a name was introduced into a scope
type BindingKind string

const (
	Parameter BindingKind = "PARAMETER"
	Variable  BindingKind = "VARIABLE"
	Function  BindingKind = "FUNCTION"
	Class     BindingKind = "CLASS"
	Import    BindingKind = "IMPORT"
	// Catch represents the error binding of a catch clause
	Catch BindingKind = "CATCH"
)
