package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndentJson(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: `{}`, expected: `{}`},
		{input: `[]`, expected: `[]`},
		{input: `"Tandl\u00e6ge"`, expected: `"Tandlæge"`},
		{input: `{"b":1,"a":2}`, expected: "{\n  \"b\": 1,\n  \"a\": 2\n}"},
		{
			input:    `{"Results":[{"Id":1e3,"Open":true},{"Id":2,"Open":false}],"Next":null}`,
			expected: "{\n  \"Results\": [\n    {\n      \"Id\": 1e3,\n      \"Open\": true\n    },\n    {\n      \"Id\": 2,\n      \"Open\": false\n    }\n  ],\n  \"Next\": null\n}",
		},
		{input: `{"q":"say \"hi\"\n"}`, expected: "{\n  \"q\": \"say \\\"hi\\\"\\n\"\n}"},
		{input: `[[],{"a":[1,[2]]}]`, expected: "[\n  [],\n  {\n    \"a\": [\n      1,\n      [\n        2\n      ]\n    ]\n  }\n]"},
	}

	for _, test := range testCases {
		out, err := indentJson([]byte(test.input))
		require.NoError(t, err, test.input)
		require.Equal(t, test.expected, string(out), test.input)
	}
}

func TestIndentJsonInvalid(t *testing.T) {
	_, err := indentJson([]byte(`{"a":`))
	require.Error(t, err)
}
