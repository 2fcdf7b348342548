package parser

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// description errors
	synErrEmptyDescription = newSyntaxError("a description must define at least one token category")
	synErrNotMapping       = newSyntaxError("a description must be a mapping from category names to patterns")
	synErrInvalidKindName  = newSyntaxError("a category name must be a non-empty string")
	synErrPatternNotString = newSyntaxError("a pattern must be a string")

	// grammar errors
	synErrEmptyGrammar         = newSyntaxError("a grammar file must be a mapping")
	synErrUnknownKey           = newSyntaxError("unknown key")
	synErrNotString            = newSyntaxError("the value must be a string")
	synErrProductionsNotList   = newSyntaxError("productions must be a list of strings")
	synErrNoArrow              = newSyntaxError("a production needs `->` between its left-hand side and alternatives")
	synErrNoProductionName     = newSyntaxError("a production name is missing")
	synErrInvalidProductionLHS = newSyntaxError("a production name cannot contain spaces")
)
