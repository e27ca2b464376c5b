package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The evaluator accepts exactly three expression shapes, checked in order:
// a SUM(...) aggregate over every item price in the document, an arithmetic
// expression containing cell references like A1 or B12, or a bare numeric
// literal. Anything that fails to parse evaluates to 0 so a broken formula
// shows as 0 on the cost sheet instead of an error.

var (
	refTokenRe   = regexp.MustCompile(`[A-Z][0-9]+`)
	disallowedRe = regexp.MustCompile(`[^0-9+\-*/(). \t]`)
)

// EvaluateFormula evaluates a raw formula string (with or without its
// leading "=") against the document and returns the numeric result.
func EvaluateFormula(doc *Document, raw string) float64 {
	expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "="))
	expr = strings.ToUpper(expr)

	if strings.HasPrefix(expr, "SUM(") {
		// Document-wide aggregate. The argument text is ignored: SUM always
		// covers every item price across every category.
		var sum float64
		for _, item := range doc.FlattenedItems() {
			sum += numericValue(item.Price)
		}
		return sum
	}

	if refTokenRe.MatchString(expr) {
		resolved := refTokenRe.ReplaceAllStringFunc(expr, func(token string) string {
			column := token[0]
			row, err := strconv.Atoi(token[1:])
			if err != nil || row < 1 {
				return "0"
			}
			v := ResolveRef(doc, column, row-1)
			return "(" + strconv.FormatFloat(v, 'f', -1, 64) + ")"
		})
		resolved = disallowedRe.ReplaceAllString(resolved, "")
		return evalArithmetic(resolved)
	}

	return ParseNumber(expr)
}

// evalArithmetic evaluates a restricted arithmetic expression containing
// only digits, + - * / ( ) . and whitespace. Malformed input yields 0.
func evalArithmetic(expr string) float64 {
	p := &exprParser{input: expr}
	v, ok := p.parseAddSub()
	if !ok {
		return 0
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) parseAddSub() (float64, bool) {
	v, ok := p.parseMulDiv()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, ok := p.parseMulDiv()
		if !ok {
			return 0, false
		}
		if op == '+' {
			v += right
		} else {
			v -= right
		}
	}
	return v, true
}

func (p *exprParser) parseMulDiv() (float64, bool) {
	v, ok := p.parseUnary()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, ok := p.parseUnary()
		if !ok {
			return 0, false
		}
		if op == '*' {
			v *= right
		} else {
			v /= right
		}
	}
	return v, true
}

func (p *exprParser) parseUnary() (float64, bool) {
	p.skipSpaces()
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
		v, ok := p.parseUnary()
		return -v, ok
	}
	if p.pos < len(p.input) && p.input[p.pos] == '+' {
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	if p.input[p.pos] == '(' {
		p.pos++
		v, ok := p.parseAddSub()
		if !ok {
			return 0, false
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
