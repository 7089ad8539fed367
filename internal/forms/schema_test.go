package forms

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDefault(t *testing.T) {
	assert.Equal(t, "hello", SanitizeDefault("  <hello>  "))
	assert.Equal(t, "scriptalert(1)/script", SanitizeDefault("<script>alert(1)</script>"))
	assert.Equal(t, "", SanitizeDefault("   "))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", SanitizeEmail("  USER@Example.COM "))
}

func TestRequiredRule(t *testing.T) {
	schema := Schema{{Name: "name", Rules: []Rule{Required("name is required")}}}

	errs := schema.Validate(map[string]string{"name": ""})
	assert.Equal(t, "name is required", errs["name"])

	errs = schema.Validate(map[string]string{"name": "Marco"})
	assert.Empty(t, errs)
}

func TestFirstFailingRuleWins(t *testing.T) {
	schema := Schema{{Name: "subject", Rules: []Rule{
		Required("required"),
		MinLen(5, "too short"),
		MaxLen(200, "too long"),
	}}}

	assert.Equal(t, "required", schema.Validate(map[string]string{"subject": ""})["subject"])
	assert.Equal(t, "too short", schema.Validate(map[string]string{"subject": "Hi"})["subject"])
	assert.Empty(t, schema.Validate(map[string]string{"subject": "Hello there"}))
}

func TestOptionalRulesSkipEmptyValues(t *testing.T) {
	schema := Schema{
		{Name: "phone", Rules: []Rule{Pattern(regexp.MustCompile(`^\+?[0-9]{7,}$`), "bad phone")}},
		{Name: "website", Rules: []Rule{URL("bad url")}},
	}

	assert.Empty(t, schema.Validate(map[string]string{"phone": "", "website": ""}))
	assert.Equal(t, "bad phone", schema.Validate(map[string]string{"phone": "abc"})["phone"])
	assert.Equal(t, "bad url", schema.Validate(map[string]string{"website": "not a url"})["website"])
	assert.Empty(t, schema.Validate(map[string]string{"phone": "+998901234567", "website": "https://example.com"}))
}

func TestIntRange(t *testing.T) {
	schema := Schema{{Name: "rating", Rules: []Rule{
		Required("rating is required"),
		IntRange(1, 5, "rating out of range"),
	}}}

	for _, tc := range []struct {
		value string
		want  string
	}{
		{"1", ""},
		{"3", ""},
		{"5", ""},
		{"0", "rating out of range"},
		{"6", "rating out of range"},
		{"4.5", "rating out of range"},
		{"abc", "rating out of range"},
		{"", "rating is required"},
	} {
		errs := schema.Validate(map[string]string{"rating": tc.value})
		if tc.want == "" {
			assert.Empty(t, errs, "value %q", tc.value)
		} else {
			assert.Equal(t, tc.want, errs["rating"], "value %q", tc.value)
		}
	}
}

func TestValidateField(t *testing.T) {
	schema := Schema{
		{Name: "email", Sanitize: SanitizeEmail, Rules: []Rule{Required("required"), Email("bad email")}},
		{Name: "name", Rules: []Rule{Required("required")}},
	}

	assert.Equal(t, "bad email", schema.ValidateField("email", "nope"))
	assert.Equal(t, "", schema.ValidateField("email", "a@b.co"))
	assert.Equal(t, "", schema.ValidateField("unknown", "anything"))
}

func TestSanitizeAllDropsUnknownKeys(t *testing.T) {
	schema := Schema{{Name: "name"}}
	out := schema.SanitizeAll(map[string]string{"name": " <X> ", "evil": "y"})
	assert.Equal(t, map[string]string{"name": "X"}, out)
}
