package dframe

// lexState encodes exactly where the tokenizer is within the cell
// grammar. At a boundary state the variant also classifies the token:
// the state reached when a cell closes determines whether its byte
// slice is converted as an integer, a float or kept as a string, so no
// separate token type exists.
type lexState uint8

const (
	stateStart lexState = iota

	// Header scanning uses a reduced alphabet over the same enum.
	stateHeaderString
	stateHeaderQuoteStart
	stateHeaderQuoteEnd
	stateHeaderSep

	// Unquoted string cell.
	stateCellString // first byte of an unquoted string cell
	stateCellCurrent

	// Quoted string cell.
	stateCellQuoteStart
	stateCellQuoteCurrent
	stateCellQuoteEnd

	// Quoted integer cell.
	stateCellQuoteNumberStart
	stateCellQuoteNumberCurrent
	stateCellQuoteNumberEnd

	// Quoted decimal cell, before and after the point is read.
	stateCellQuoteDecimalStart
	stateCellQuoteDecimalCurrent
	stateCellQuoteDecimalEnd
	stateCellQuoteDecimalStartPoint
	stateCellQuoteDecimalCurrentPoint
	stateCellQuoteDecimalEndPoint

	// Unquoted numeric cells. This block must stay contiguous: the
	// suspended states below remember one of these six by offset.
	stateCellNumberStart
	stateCellNumberCurrent
	stateCellDecimalStart
	stateCellDecimalCurrent
	stateCellDecimalStartPoint
	stateCellDecimalCurrentPoint

	// Terminal states for unquoted numerics.
	stateCellNumberEnd
	stateCellDecimalEnd
	stateCellDecimalEndPoint

	// Cell-separator boundary, leading-whitespace skip, line end.
	stateCellSep
	stateSkipWhitespace
	stateNewLine
	stateEndFile

	// Suspended on whitespace after a partially read number/decimal.
	// The offset from the base remembers which numeric sub-state was
	// interrupted; the next decisive byte resolves to the terminal
	// that sub-state would have produced directly.
	stateSuspSpaceNumberStart
	stateSuspSpaceNumberCurrent
	stateSuspSpaceDecimalStart
	stateSuspSpaceDecimalCurrent
	stateSuspSpaceDecimalStartPoint
	stateSuspSpaceDecimalCurrentPoint

	// Suspended on a bare CR after a number/decimal, pending the next
	// byte so CRLF does not terminate the cell mid-sequence.
	stateSuspCRNumberStart
	stateSuspCRNumberCurrent
	stateSuspCRDecimalStart
	stateSuspCRDecimalCurrent
	stateSuspCRDecimalStartPoint
	stateSuspCRDecimalCurrentPoint
)

func (s lexState) isUnquotedNumeric() bool {
	return s >= stateCellNumberStart && s <= stateCellDecimalCurrentPoint
}

func (s lexState) isSuspendedSpace() bool {
	return s >= stateSuspSpaceNumberStart && s <= stateSuspSpaceDecimalCurrentPoint
}

func (s lexState) isSuspendedCR() bool {
	return s >= stateSuspCRNumberStart && s <= stateSuspCRDecimalCurrentPoint
}

func (s lexState) isSuspended() bool {
	return s >= stateSuspSpaceNumberStart && s <= stateSuspCRDecimalCurrentPoint
}

// suspendSpace enters the whitespace-suspended variant of a numeric
// sub-state.
func suspendSpace(prior lexState) lexState {
	return stateSuspSpaceNumberStart + (prior - stateCellNumberStart)
}

// suspendCR enters the bare-CR-suspended variant of a numeric sub-state.
func suspendCR(prior lexState) lexState {
	return stateSuspCRNumberStart + (prior - stateCellNumberStart)
}

// suspendedPrior recovers the numeric sub-state a suspension remembers.
func (s lexState) suspendedPrior() lexState {
	if s.isSuspendedSpace() {
		return stateCellNumberStart + (s - stateSuspSpaceNumberStart)
	}
	return stateCellNumberStart + (s - stateSuspCRNumberStart)
}

// endOfNumeric maps a numeric sub-state to the terminal it produces
// when a separator or line end closes the cell.
func endOfNumeric(s lexState) lexState {
	if s == stateCellNumberStart || s == stateCellNumberCurrent {
		return stateCellNumberEnd
	}
	return stateCellDecimalEnd
}

// nextState is the transition function of the tokenizer: total, pure,
// no allocation. Each byte is classified as quote, decimal point,
// digit, separator, CR, LF, whitespace or other, and dispatched to a
// per-class rule.
func nextState(s lexState, c byte) lexState {
	switch c {
	case '"':
		return handleQuote(s)
	case '.':
		return handlePoint(s)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return handleDigit(s)
	case ',':
		return handleSeparator(s)
	case '\r':
		return handleCR(s)
	case '\n':
		return handleLF(s)
	case ' ', '\t':
		return handleSpace(s)
	default:
		return handleOther(s)
	}
}

// handleQuote closes an open quoted context or opens a new one. Each
// quoted flavour has its own closing-quote terminal so the boundary
// state still classifies the token.
func handleQuote(s lexState) lexState {
	switch s {
	case stateCellQuoteStart, stateCellQuoteCurrent:
		return stateCellQuoteEnd
	case stateCellQuoteNumberStart, stateCellQuoteNumberCurrent:
		return stateCellQuoteNumberEnd
	case stateCellQuoteDecimalStart, stateCellQuoteDecimalCurrent:
		return stateCellQuoteDecimalEnd
	case stateCellQuoteDecimalStartPoint, stateCellQuoteDecimalCurrentPoint:
		return stateCellQuoteDecimalEndPoint
	default:
		// Decisive for suspended states too: a quote after "12 "
		// opens a quoted cell exactly as it would have without the
		// intervening whitespace.
		return stateCellQuoteStart
	}
}

// handlePoint reads a decimal point. A second point within one cell
// demotes it to a string for the rest of its lifetime.
func handlePoint(s lexState) lexState {
	switch s {
	case stateCellNumberStart, stateCellNumberCurrent:
		return stateCellDecimalCurrentPoint
	case stateCellDecimalStart, stateCellDecimalCurrent:
		return stateCellDecimalCurrentPoint
	case stateCellQuoteStart:
		return stateCellQuoteDecimalStartPoint
	case stateCellQuoteCurrent:
		return stateCellQuoteCurrent
	case stateCellQuoteNumberStart, stateCellQuoteNumberCurrent:
		return stateCellQuoteDecimalCurrentPoint
	case stateCellQuoteDecimalStart, stateCellQuoteDecimalCurrent:
		return stateCellQuoteDecimalCurrentPoint
	case stateCellQuoteDecimalStartPoint, stateCellQuoteDecimalCurrentPoint:
		// Second point inside quotes: quoted string from here on.
		return stateCellQuoteCurrent
	case stateCellString, stateCellCurrent,
		stateCellDecimalStartPoint, stateCellDecimalCurrentPoint:
		// Second point: permanently a string.
		return stateCellCurrent
	case stateSkipWhitespace:
		return stateCellDecimalStartPoint
	default:
		if s.isSuspended() {
			// Not decisive: the number interpretation is abandoned.
			return stateCellCurrent
		}
		return stateCellDecimalStartPoint
	}
}

func handleDigit(s lexState) lexState {
	switch s {
	case stateCellQuoteDecimalStartPoint, stateCellQuoteDecimalCurrentPoint:
		return stateCellQuoteDecimalCurrentPoint
	case stateCellQuoteStart, stateCellQuoteNumberStart, stateCellQuoteNumberCurrent:
		return stateCellQuoteNumberCurrent
	case stateCellQuoteCurrent:
		return stateCellQuoteCurrent
	case stateCellQuoteDecimalStart, stateCellQuoteDecimalCurrent:
		return stateCellQuoteDecimalCurrent
	case stateCellNumberStart, stateCellNumberCurrent:
		return stateCellNumberCurrent
	case stateCellDecimalStartPoint, stateCellDecimalCurrentPoint:
		return stateCellDecimalCurrentPoint
	case stateCellDecimalStart, stateCellDecimalCurrent:
		return stateCellDecimalCurrent
	case stateCellString, stateCellCurrent:
		return stateCellCurrent
	case stateSkipWhitespace:
		return stateCellNumberStart
	default:
		if s.isSuspended() {
			return stateCellCurrent
		}
		return stateCellNumberStart
	}
}

// handleSeparator reads the field separator. Inside a quoted context
// the separator is cell content; otherwise it closes the cell with the
// terminal matching what has been read so far.
func handleSeparator(s lexState) lexState {
	switch s {
	case stateCellQuoteStart, stateCellQuoteCurrent,
		stateCellQuoteNumberStart, stateCellQuoteNumberCurrent,
		stateCellQuoteDecimalStart, stateCellQuoteDecimalCurrent,
		stateCellQuoteDecimalStartPoint, stateCellQuoteDecimalCurrentPoint:
		return stateCellQuoteCurrent
	case stateCellNumberStart, stateCellNumberCurrent:
		return stateCellNumberEnd
	case stateCellDecimalStart, stateCellDecimalCurrent,
		stateCellDecimalStartPoint, stateCellDecimalCurrentPoint:
		return stateCellDecimalEnd
	default:
		if s.isSuspended() {
			return endOfNumeric(s.suspendedPrior())
		}
		return stateCellSep
	}
}

// handleLF reads a line feed. Numeric cells close with their numeric
// terminal; quoted contexts swallow the byte; anything else reaches the
// line-end boundary.
func handleLF(s lexState) lexState {
	switch s {
	case stateCellQuoteStart, stateCellQuoteCurrent,
		stateCellQuoteNumberStart, stateCellQuoteNumberCurrent,
		stateCellQuoteDecimalStart, stateCellQuoteDecimalCurrent,
		stateCellQuoteDecimalStartPoint, stateCellQuoteDecimalCurrentPoint:
		return stateCellQuoteCurrent
	case stateCellNumberStart, stateCellNumberCurrent:
		return stateCellNumberEnd
	case stateCellDecimalStart, stateCellDecimalCurrent,
		stateCellDecimalStartPoint, stateCellDecimalCurrentPoint:
		return stateCellDecimalEnd
	default:
		if s.isSuspended() {
			return endOfNumeric(s.suspendedPrior())
		}
		return stateNewLine
	}
}

// handleCR reads a carriage return. After a number or decimal the cell
// is not closed yet: the state suspends, remembering the numeric
// sub-state, and the following byte decides (LF completes a CRLF line
// end, anything else abandons the number).
func handleCR(s lexState) lexState {
	switch {
	case s == stateCellQuoteStart || s == stateCellQuoteCurrent ||
		s == stateCellQuoteNumberStart || s == stateCellQuoteNumberCurrent ||
		s == stateCellQuoteDecimalStart || s == stateCellQuoteDecimalCurrent ||
		s == stateCellQuoteDecimalStartPoint || s == stateCellQuoteDecimalCurrentPoint:
		return stateCellQuoteCurrent
	case s.isUnquotedNumeric():
		return suspendCR(s)
	case s.isSuspendedSpace():
		return suspendCR(s.suspendedPrior())
	case s.isSuspendedCR():
		return s
	default:
		return stateNewLine
	}
}

// handleSpace reads ASCII whitespace (space or tab). After a partially
// read number it suspends rather than closing or demoting the cell;
// resolution is deferred to the next decisive byte.
func handleSpace(s lexState) lexState {
	switch {
	case s == stateCellQuoteStart || s == stateCellQuoteCurrent:
		return stateCellQuoteCurrent
	case s == stateCellQuoteNumberStart || s == stateCellQuoteNumberCurrent ||
		s == stateCellQuoteDecimalStart || s == stateCellQuoteDecimalCurrent ||
		s == stateCellQuoteDecimalStartPoint || s == stateCellQuoteDecimalCurrentPoint:
		// Whitespace inside a quoted numeric: a quoted string after all.
		return stateCellQuoteCurrent
	case s.isUnquotedNumeric():
		return suspendSpace(s)
	case s.isSuspendedSpace():
		return s
	case s.isSuspendedCR():
		// The bare CR was not a CRLF; the cell continues as a string.
		return stateCellCurrent
	case s == stateCellString || s == stateCellCurrent:
		return stateCellCurrent
	case s == stateCellQuoteEnd || s == stateCellQuoteNumberEnd ||
		s == stateCellQuoteDecimalEnd || s == stateCellQuoteDecimalEndPoint:
		// Trailing whitespace between a closing quote and the separator.
		return s
	case s == stateSkipWhitespace:
		return stateSkipWhitespace
	default:
		// Start of a cell: skip leading whitespace so a following
		// number still tokenizes as a number.
		return stateSkipWhitespace
	}
}

func handleOther(s lexState) lexState {
	switch {
	case s == stateCellQuoteStart || s == stateCellQuoteCurrent ||
		s == stateCellQuoteNumberStart || s == stateCellQuoteNumberCurrent ||
		s == stateCellQuoteDecimalStart || s == stateCellQuoteDecimalCurrent ||
		s == stateCellQuoteDecimalStartPoint || s == stateCellQuoteDecimalCurrentPoint:
		// Only a quote exits a quoted context.
		return stateCellQuoteCurrent
	case s == stateCellString || s == stateCellCurrent || s.isUnquotedNumeric():
		return stateCellCurrent
	case s.isSuspended():
		return stateCellCurrent
	case s == stateCellQuoteEnd || s == stateCellQuoteNumberEnd ||
		s == stateCellQuoteDecimalEnd || s == stateCellQuoteDecimalEndPoint:
		// Junk after a closing quote: cell content is already recorded,
		// keep reading without resetting the slice bounds.
		return stateCellCurrent
	default:
		return stateCellString
	}
}

// startsCell reports whether entering this state marks the first byte
// of a cell's content, and how far past the current byte the content
// begins (1 for quote openers, 0 otherwise).
func (s lexState) startsCell() (skip int, ok bool) {
	switch s {
	case stateCellString, stateCellNumberStart, stateCellDecimalStartPoint:
		return 0, true
	case stateCellQuoteStart:
		// Every quoted flavour is entered through the opening quote;
		// content begins one byte past it.
		return 1, true
	default:
		return 0, false
	}
}

// recordsQuoteEnd reports whether this state pins the end of a quoted
// cell's content ahead of the separator that will close it.
func (s lexState) recordsQuoteEnd() bool {
	switch s {
	case stateCellQuoteEnd, stateCellQuoteNumberEnd,
		stateCellQuoteDecimalEnd, stateCellQuoteDecimalEndPoint:
		return true
	default:
		return false
	}
}

// isBoundary reports whether this state materializes a cell value.
func (s lexState) isBoundary() bool {
	switch s {
	case stateCellSep, stateCellNumberEnd, stateCellDecimalEnd,
		stateCellDecimalEndPoint, stateNewLine:
		return true
	default:
		return false
	}
}
