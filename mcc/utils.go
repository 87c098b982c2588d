// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package mcc

import (
	"strings"
	"unicode"
)

// IsValidName reports whether name is a valid player name.
func IsValidName(name string) bool {
	if len(name) < 3 || len(name) > 16 {
		return false
	}

	for _, c := range name {
		if c > unicode.MaxASCII || (!unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_') {
			return false
		}
	}

	return true
}

// WordWrap wraps message at width characters.
func WordWrap(message string, width int) (result []string) {
	for _, line := range strings.Split(message, "\n") {
		for {
			if len(line) <= width {
				break
			}

			i := strings.LastIndex(line[:width+1], " ")
			if i < 0 {
				i = strings.LastIndex(line, " ")
				if i < 0 {
					break
				}
			}

			result = append(result, line[:i])
			line = line[i+1:]
		}

		result = append(result, line)
	}

	return
}
