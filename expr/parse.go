package expr

// Parse runs the full text -> Expression pipeline: Lex, Shunt, Build. It is
// the expr-level half of mathscript's public Parse; the root mathscript
// package re-exports it unchanged.
func Parse(text string) (Expression, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, err
	}
	rpn, err := Shunt(toks)
	if err != nil {
		return nil, err
	}
	return Build(rpn)
}
