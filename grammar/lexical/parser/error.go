package parser

import "fmt"

var (
	ParseErr = fmt.Errorf("parse error")

	synErrUnexpectedEOF    = fmt.Errorf("unexpected end of pattern; a character is expected")
	synErrGroupUnclosed    = fmt.Errorf("unclosed grouping expression")
	synErrGroupNoInitiator = fmt.Errorf(") needs preceding (")
)
