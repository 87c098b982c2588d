// Copyright (c) 2017-2019 Andrew Goulas
// Licensed under the MIT license.

package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	formatter := DefaultFormatter()
	assert.Equal(t, "1.00 coin", formatter.Format(1))
	assert.Equal(t, "5.00 coins", formatter.Format(5))
	assert.Equal(t, "0.50 coins", formatter.Format(0.5))
	assert.Equal(t, "1,250.00 coins", formatter.Format(1250))
}

func TestFormatLocale(t *testing.T) {
	formatter := NewFormatter("de", "Taler", "")
	assert.Equal(t, "1.250,50 Taler", formatter.Format(1250.5))

	formatter = NewFormatter("not a locale!", "", "")
	assert.Equal(t, "2.00", formatter.Format(2))
}
