package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"e@x.com", "first.last+tag@sub.example.org", "A_B@host.io"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plain", "no-at.example.com", "a@b", "a@@b.com", "a b@c.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "e@x.com", NormalizeEmail("  E@X.com "))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.NoError(t, ValidatePassword("secret1"))
	assert.Error(t, ValidatePassword("12345"))
	assert.Error(t, ValidatePassword(""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SplitList(" A, B ,,C,A "))
	assert.Empty(t, SplitList(" , ,"))
	assert.Empty(t, SplitList(""))
}
