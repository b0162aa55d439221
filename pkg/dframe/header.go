package dframe

// scanHeader extracts the column names from the first logical line of
// the buffer and returns them together with the offset of the byte that
// terminated the header (a CR, an LF, or len(data) when the buffer ends
// inside the header).
//
// Column names are either quoted or bare, separated by commas. A quote
// that is opened and never closed consumes the remainder of the buffer
// as the last column name; that is deliberate best-effort behavior, not
// an error.
func scanHeader(data []byte) ([]string, int) {
	var (
		names  []string
		offset int
		state  = stateStart
	)

	// Leading whitespace before the header line is ignored.
	for offset < len(data) && isASCIISpace(data[offset]) {
		offset++
	}

	for {
		switch state {
		case stateStart:
			state = headerStartState(data, offset)
			if state == stateHeaderSep {
				// A leading separator means the first column has an
				// empty name; rows will still carry a cell for it.
				names = append(names, "")
			}

		case stateHeaderQuoteStart:
			name, next := scanQuotedName(data, offset)
			names = append(names, name)
			offset = next
			if offset >= len(data) {
				return names, len(data)
			}
			state = stateHeaderQuoteEnd

		case stateHeaderString:
			name, next, term := scanBareName(data, offset)
			names = append(names, name)
			offset = next
			state = term

		case stateHeaderQuoteEnd, stateHeaderSep:
			wasSep := state == stateHeaderSep
			offset++
			state = headerStartState(data, offset)
			if wasSep && (state == stateHeaderSep || state == stateNewLine) {
				// Two adjacent separators, or a separator at the line
				// end: an empty column name in between.
				names = append(names, "")
			}

		case stateNewLine:
			return names, offset

		default:
			state = headerStartState(data, offset)
		}
	}
}

// headerStartState classifies the byte at offset for the header's
// reduced alphabet: quote, separator, line end, or the start of a bare
// name.
func headerStartState(data []byte, offset int) lexState {
	if offset >= len(data) {
		return stateNewLine
	}
	switch data[offset] {
	case '"':
		return stateHeaderQuoteStart
	case ',':
		return stateHeaderSep
	case '\r', '\n':
		return stateNewLine
	default:
		return stateHeaderString
	}
}

// scanQuotedName reads a quoted column name starting at the opening
// quote. It returns the name and the offset of the closing quote, or
// len(data) when the quote never closes.
func scanQuotedName(data []byte, offset int) (string, int) {
	offset++ // opening quote
	start := offset
	for offset < len(data) && data[offset] != '"' {
		offset++
	}
	return string(data[start:offset]), offset
}

// scanBareName reads an unquoted column name and returns it with the
// offset and state of the terminating byte.
func scanBareName(data []byte, offset int) (string, int, lexState) {
	start := offset
	offset++
	for offset < len(data) {
		switch data[offset] {
		case ',':
			return string(data[start:offset]), offset, stateHeaderSep
		case '\r', '\n':
			return string(data[start:offset]), offset, stateNewLine
		}
		offset++
	}
	return string(data[start:offset]), offset, stateNewLine
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
