package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	tests := []struct {
		rule  Rule
		input string
		want  string
	}{
		{CamelCase, "user_name", "userName"},
		{CamelCase, "UserID", "userId"},
		{CamelCase, "XMLParser", "xmlParser"},
		{PascalCase, "user_name", "UserName"},
		{PascalCase, "http2Server", "Http2Server"},
		{SnakeCase, "UserName", "user_name"},
		{SnakeCase, "XMLParser", "xml_parser"},
		{KebabCase, "userName", "user-name"},
		{ScreamingSnakeCase, "userName", "USER_NAME"},
		{ScreamingKebabCase, "user_name", "USER-NAME"},
		{Lowercase, "User_Name", "user_name"},
		{Uppercase, "user_name", "USER_NAME"},
		{Identity, "user_Name", "user_Name"},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String()+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.rule, tt.input))
		})
	}
}

func TestApply_IdentityIsUnchanged(t *testing.T) {
	inputs := []string{"", "x", "already_snake", "CamelCase", "with space", "ünïcode", "__"}

	for _, s := range inputs {
		assert.Equal(t, s, Apply(Identity, s))
	}
}

func TestParseRule(t *testing.T) {
	for name, rule := range ruleNames {
		assert.Equal(t, rule, ParseRule(name))
		assert.Equal(t, name, rule.String())
	}

	assert.Equal(t, Identity, ParseRule("Train-Case"))
	assert.Equal(t, Identity, ParseRule(""))

	_, ok := Lookup("snake-case")
	assert.False(t, ok)
}

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"user_name", []string{"user", "name"}},
		{"OrderID", []string{"Order", "ID"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"http2Server", []string{"http2", "Server"}},
		{"__leading--and  trailing__", []string{"leading", "and", "trailing"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}
