package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrNoStartSymbol       = newSemanticError("a grammar needs a start symbol")
	semErrStartSymbolIsSet    = newSemanticError("the start symbol is already set")
	semErrStartNotNonTerminal = newSemanticError("the start symbol must be a non-terminal symbol")
	semErrUndefinedStart      = newSemanticError("the start symbol has no production")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrEOFInRHS            = newSemanticError("the end-of-input symbol cannot appear in a production")
	semErrInvalidSymbol       = newSemanticError("invalid symbol")
	semErrReservedCategory    = newSemanticError("the category is reserved")
	semErrNoLHS               = newSemanticError("a production needs a left-hand side")
)
