package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lex(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "integer literal",
			input: "123",
			expect: []Token{
				{Type: TokInteger, Text: "123", IntVal: 123},
			},
		},
		{
			name:  "float literal with trailing dot",
			input: "123.",
			expect: []Token{
				{Type: TokFloat, Text: "123.", FloatVal: 123.0},
			},
		},
		{
			name:  "float literal with decimal digits",
			input: "123.456",
			expect: []Token{
				{Type: TokFloat, Text: "123.456", FloatVal: 123.456},
			},
		},
		{
			name:  "scientific notation with sign",
			input: "1.5e-3",
			expect: []Token{
				{Type: TokFloat, Text: "1.5e-3", FloatVal: 1.5e-3},
			},
		},
		{
			name:  "leading unary minus",
			input: "-3",
			expect: []Token{
				{Type: TokOperator, Text: "-", Op: "~", Assoc: RightAssoc, Prec: 5},
				{Type: TokInteger, Text: "3", IntVal: 3},
			},
		},
		{
			name:  "minus after operand is binary",
			input: "3-4",
			expect: []Token{
				{Type: TokInteger, Text: "3", IntVal: 3},
				{Type: TokOperator, Text: "-", Op: "-", Assoc: LeftAssoc, Prec: 0},
				{Type: TokInteger, Text: "4", IntVal: 4},
			},
		},
		{
			name:  "minus after open paren is unary",
			input: "(-3)",
			expect: []Token{
				{Type: TokPunct, Text: "("},
				{Type: TokOperator, Text: "-", Op: "~", Assoc: RightAssoc, Prec: 5},
				{Type: TokInteger, Text: "3", IntVal: 3},
				{Type: TokPunct, Text: ")"},
			},
		},
		{
			name:  "identifier",
			input: "x_1",
			expect: []Token{
				{Type: TokIdentifier, Text: "x_1"},
			},
		},
		{
			name:  "function call shape",
			input: "sin(x)",
			expect: []Token{
				{Type: TokIdentifier, Text: "sin"},
				{Type: TokPunct, Text: "("},
				{Type: TokIdentifier, Text: "x"},
				{Type: TokPunct, Text: ")"},
			},
		},
		{
			name:  "minus after factorial is binary",
			input: "5!-3",
			expect: []Token{
				{Type: TokInteger, Text: "5", IntVal: 5},
				{Type: TokOperator, Text: "!", Op: "!"},
				{Type: TokOperator, Text: "-", Op: "-", Assoc: LeftAssoc, Prec: 0},
				{Type: TokInteger, Text: "3", IntVal: 3},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Lex(tc.input)
			if !assert.NoError(err) {
				return
			}

			if assert.Len(actual, len(tc.expect)) {
				for i := range tc.expect {
					assert.Equal(tc.expect[i].Type, actual[i].Type, "token %d type", i)
					assert.Equal(tc.expect[i].Text, actual[i].Text, "token %d text", i)
					assert.Equal(tc.expect[i].IntVal, actual[i].IntVal, "token %d intval", i)
					assert.Equal(tc.expect[i].FloatVal, actual[i].FloatVal, "token %d floatval", i)
					assert.Equal(tc.expect[i].Op, actual[i].Op, "token %d op", i)
				}
			}
		})
	}
}

func Test_Lex_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		kind  error
	}{
		{name: "unexpected char", input: "3 @ 4", kind: ErrUnexpectedChar},
		{name: "unexpected char at dollar", input: "$foo", kind: ErrUnexpectedChar},
		{name: "second decimal point", input: "1.2.3", kind: ErrMalformedNumber},
		{name: "second exponent marker", input: "1e2e3", kind: ErrMalformedNumber},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Lex(tc.input)
			if assert.Error(err) {
				assert.ErrorIs(err, tc.kind)
			}
		})
	}
}
