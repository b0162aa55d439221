package dframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// feed runs the transition function over input starting from stateStart
// and returns the final state.
func feed(input string) lexState {
	s := stateStart
	for i := 0; i < len(input); i++ {
		s = nextState(s, input[i])
	}
	return s
}

func TestTokenClassification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  lexState
	}{
		{"integer", "42,", stateCellNumberEnd},
		{"negative-looking integer is a string", "-42,", stateCellSep},
		{"decimal", "3.5,", stateCellDecimalEnd},
		{"trailing point decimal", "3.,", stateCellDecimalEnd},
		{"leading point decimal", ".5,", stateCellDecimalEnd},
		{"bare point", ".,", stateCellDecimalEnd},
		{"second point demotes to string", "3.5.6,", stateCellSep},
		{"plain string", "abc,", stateCellSep},
		{"digits after letters stay string", "a12,", stateCellSep},
		{"letters after digits demote", "12a,", stateCellSep},
		{"leading whitespace skipped before number", "  42,", stateCellNumberEnd},
		{"internal space abandons number", "12 34,", stateCellSep},
		{"trailing space keeps number", "12 ,", stateCellNumberEnd},
		{"trailing space keeps decimal", "3.5 ,", stateCellDecimalEnd},
		{"quoted string", `"ab",`, stateCellSep},
		{"quoted separator is content", `"a,b"`, stateCellQuoteEnd},
		{"quoted number closes typed", `"12"`, stateCellQuoteNumberEnd},
		{"quoted decimal closes typed", `"3.5"`, stateCellQuoteDecimalEnd},
		{"space inside quoted number demotes", `"1 2"`, stateCellQuoteEnd},
		{"integer at line feed", "42\n", stateCellNumberEnd},
		{"decimal at line feed", "3.5\n", stateCellDecimalEnd},
		{"string at line feed", "abc\n", stateNewLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feed(tt.input))
		})
	}
}

func TestCRSuspension(t *testing.T) {
	// A CR after a number suspends: the LF of a CRLF closes the number,
	// any other byte abandons the numeric reading.
	assert.Equal(t, stateCellNumberEnd, feed("12\r\n"))
	assert.Equal(t, stateCellDecimalEnd, feed("3.5\r\n"))
	assert.Equal(t, stateCellCurrent, feed("12\rx"))
	assert.Equal(t, stateCellCurrent, feed("12\r "))
	// A bare CR on a string cell is a line end.
	assert.Equal(t, stateNewLine, feed("abc\r"))
}

var numericPriors = []lexState{
	stateCellNumberStart, stateCellNumberCurrent,
	stateCellDecimalStart, stateCellDecimalCurrent,
	stateCellDecimalStartPoint, stateCellDecimalCurrentPoint,
}

// A decisive byte must resolve a suspended state exactly as it would
// have resolved the remembered numeric state directly: suspension only
// defers the decision, it never changes it.
func TestSuspensionIsTransparent(t *testing.T) {
	decisive := []byte{',', '\n', '"', '\r'}
	for _, prior := range numericPriors {
		for _, b := range decisive {
			assert.Equal(t,
				nextState(prior, b),
				nextState(suspendSpace(prior), b),
				"space-suspended %v on %q", prior, b)
		}
		// CR suspensions resolve on LF and separator the same way.
		assert.Equal(t, nextState(prior, '\n'), nextState(suspendCR(prior), '\n'))
		assert.Equal(t, nextState(prior, ','), nextState(suspendCR(prior), ','))
	}
}

func TestSuspensionRoundTrip(t *testing.T) {
	for _, prior := range numericPriors {
		sp := suspendSpace(prior)
		cr := suspendCR(prior)
		assert.True(t, sp.isSuspendedSpace())
		assert.True(t, cr.isSuspendedCR())
		assert.Equal(t, prior, sp.suspendedPrior())
		assert.Equal(t, prior, cr.suspendedPrior())
		// More whitespace keeps the suspension; a CR upgrades a space
		// suspension without forgetting the prior.
		assert.Equal(t, sp, nextState(sp, ' '))
		assert.Equal(t, cr, nextState(sp, '\r'))
	}
}

func TestSuspensionAbandonedByContent(t *testing.T) {
	for _, prior := range numericPriors {
		sp := suspendSpace(prior)
		assert.Equal(t, stateCellCurrent, nextState(sp, 'x'))
		assert.Equal(t, stateCellCurrent, nextState(sp, '5'))
		assert.Equal(t, stateCellCurrent, nextState(sp, '.'))
	}
}

func TestQuoteContextIsSticky(t *testing.T) {
	// Nothing but a quote leaves a quoted context.
	for _, b := range []byte{',', '\n', '\r', ' ', 'x', '.'} {
		got := nextState(stateCellQuoteCurrent, b)
		assert.Equal(t, stateCellQuoteCurrent, got, "byte %q", b)
	}
	assert.Equal(t, stateCellQuoteEnd, nextState(stateCellQuoteCurrent, '"'))
}

func TestEndOfNumeric(t *testing.T) {
	assert.Equal(t, stateCellNumberEnd, endOfNumeric(stateCellNumberStart))
	assert.Equal(t, stateCellNumberEnd, endOfNumeric(stateCellNumberCurrent))
	assert.Equal(t, stateCellDecimalEnd, endOfNumeric(stateCellDecimalCurrent))
	assert.Equal(t, stateCellDecimalEnd, endOfNumeric(stateCellDecimalCurrentPoint))
}
