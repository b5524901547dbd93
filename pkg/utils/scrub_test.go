package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubMatchScores(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"parenthesized rank and percentage",
			"The RAV4 (#1, 94% match) fits your family.",
			"The RAV4 fits your family.",
		},
		{
			"bare rank and percentage",
			"Consider the Civic #2, 89% match for commuting.",
			"Consider the Civic for commuting.",
		},
		{
			"percentage only",
			"It scored a 91.5% match overall.",
			"It scored a overall.",
		},
		{
			"rank only",
			"Your #1 match is the Outback.",
			"Your is the Outback.",
		},
		{
			"clean reply untouched",
			"The Elantra gets 54 MPG and seats five.",
			"The Elantra gets 54 MPG and seats five.",
		},
		{
			"whitespace collapses after removal",
			"Top pick:  the Model 3   (#1, 97% match)  today.",
			"Top pick: the Model 3 today.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScrubMatchScores(tc.in))
		})
	}
}
