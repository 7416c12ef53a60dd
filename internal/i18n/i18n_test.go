package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLoad_UnknownDefault(t *testing.T) {
	if _, err := Load("fr-FR"); err == nil {
		t.Fatal("expected error for locale without catalog")
	}
	if _, err := Load("!!"); err == nil {
		t.Fatal("expected error for malformed locale")
	}
}

func TestCatalog_Match(t *testing.T) {
	c, err := Load("en-US")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	testCases := []struct {
		accept string
		want   language.Tag
	}{
		{"", language.AmericanEnglish},
		{"zh-CN", language.MustParse("zh-CN")},
		{"zh-CN,zh;q=0.9,en;q=0.8", language.MustParse("zh-CN")},
		{"en-GB", language.AmericanEnglish},
		{"de-DE", language.AmericanEnglish},
	}
	for _, tc := range testCases {
		t.Run(tc.accept, func(t *testing.T) {
			if got := c.Match(tc.accept); got != tc.want {
				t.Errorf("Match(%q) = %v, want %v", tc.accept, got, tc.want)
			}
		})
	}
}

func TestCatalog_Translate(t *testing.T) {
	c, err := Load("en-US")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Translate("en-US", "workspace_not_exist"); got != "Workspace does not exist" {
		t.Errorf("en-US = %q", got)
	}
	if got := c.Translate("zh-CN", "workspace_not_exist"); got != "工作空间不存在" {
		t.Errorf("zh-CN = %q", got)
	}
	if got := c.Translate("zh-CN", "no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q, want key", got)
	}
}

func TestCatalogs_HaveSameKeys(t *testing.T) {
	c, err := Load("en-US")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := c.messages[c.tags[0]]
	for tag, msgs := range c.messages {
		if len(msgs) != len(base) {
			t.Errorf("%v has %d keys, want %d", tag, len(msgs), len(base))
		}
		for k := range base {
			if _, ok := msgs[k]; !ok {
				t.Errorf("%v is missing %q", tag, k)
			}
		}
	}
}
