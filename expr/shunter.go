package expr

// Shunt converts an infix token sequence into RPN order, handling operator
// precedence/associativity, parenthesized groups, and variadic function
// calls, per spec.md §4.2.
func Shunt(toks []Token) ([]Token, error) {
	var queue []Token
	var opStack []Token

	// Parallel stacks, one entry per open function-call marker currently on
	// opStack (a marker is a TokIdentifier pushed by the '(' case below).
	var argCounts []int
	var emptyCall []bool

	isFuncMarker := func(t Token) bool {
		return t.Type == TokIdentifier
	}

	var prevWasIdentifier bool

	for idx := 0; idx < len(toks); idx++ {
		tok := toks[idx]

		switch tok.Type {
		case TokInteger, TokFloat:
			queue = append(queue, tok)
			prevWasIdentifier = false
		case TokIdentifier:
			// Tentatively pushed to the output queue. If '(' immediately
			// follows, the Punct '(' case below pops it back off and turns
			// it into a function-call marker on the operator stack.
			queue = append(queue, tok)
			prevWasIdentifier = true
		case TokOperator:
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Type != TokOperator {
					break
				}
				o := CanonicalOperators[tok.Op]
				oPrime := CanonicalOperators[top.Op]
				if (o.Assoc == LeftAssoc && o.Prec <= oPrime.Prec) || (o.Prec < oPrime.Prec) {
					queue = append(queue, top)
					opStack = opStack[:len(opStack)-1]
					continue
				}
				break
			}
			opStack = append(opStack, tok)
			prevWasIdentifier = false
		case TokPunct:
			switch tok.Text {
			case "(":
				if prevWasIdentifier && len(queue) > 0 && queue[len(queue)-1].Type == TokIdentifier {
					marker := queue[len(queue)-1]
					queue = queue[:len(queue)-1]
					opStack = append(opStack, marker)
					argCounts = append(argCounts, 0)

					noArgCall := idx+1 < len(toks) && toks[idx+1].Type == TokPunct && toks[idx+1].Text == ")"
					emptyCall = append(emptyCall, noArgCall)
				} else {
					opStack = append(opStack, tok)
				}
				prevWasIdentifier = false
			case ",":
				for {
					if len(opStack) == 0 {
						return nil, parseErrorf(ErrMismatchedParens, "comma outside of any function call or group")
					}
					top := opStack[len(opStack)-1]
					if isFuncMarker(top) {
						break
					}
					queue = append(queue, top)
					opStack = opStack[:len(opStack)-1]
				}
				if len(argCounts) == 0 {
					return nil, parseErrorf(ErrMismatchedParens, "comma outside of any function call")
				}
				argCounts[len(argCounts)-1]++
				prevWasIdentifier = false
			case ")":
				closedMarker := false
				for {
					if len(opStack) == 0 {
						return nil, parseErrorf(ErrMismatchedParens, "mismatched parentheses")
					}
					top := opStack[len(opStack)-1]
					opStack = opStack[:len(opStack)-1]
					if isFuncMarker(top) {
						n := argCounts[len(argCounts)-1]
						argCounts = argCounts[:len(argCounts)-1]
						wasEmptyCall := emptyCall[len(emptyCall)-1]
						emptyCall = emptyCall[:len(emptyCall)-1]

						argCount := n + 1
						if wasEmptyCall {
							argCount = 0
						}
						queue = append(queue, Token{
							Type:         TokFunctionCall,
							Pos:          top.Pos,
							FuncName:     top.Text,
							FuncArgCount: argCount,
						})
						closedMarker = true
						break
					}
					if top.Text == "(" {
						closedMarker = true
						break
					}
					queue = append(queue, top)
				}
				if !closedMarker {
					return nil, parseErrorf(ErrMismatchedParens, "mismatched parentheses")
				}
				prevWasIdentifier = false
			default:
				return nil, parseErrorf(ErrUnknownOperator, "unexpected punctuation %q", tok.Text)
			}
		default:
			return nil, parseErrorf(ErrUnknownOperator, "unexpected token %s", tok)
		}
	}

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		if top.Text == "(" || isFuncMarker(top) {
			return nil, parseErrorf(ErrMismatchedParens, "mismatched parentheses")
		}
		queue = append(queue, top)
	}

	return queue, nil
}
