package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEntries(t *testing.T) {
	c := fromEntries([]string{"PORT=9090", "EMPTY=", "DSN=host=db user=x", "NOVALUE", ""})

	assert.Equal(t, "9090", c["PORT"])
	assert.Equal(t, "", c["EMPTY"])
	assert.Equal(t, "host=db user=x", c["DSN"])
	assert.Contains(t, c, "NOVALUE")
	assert.Len(t, c, 4)
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"FLAG":    "true",
		"BAD":     "maybe",
		"EMPTY":   "",
		"ORIGINS": "http://a.test, ,http://b.test",
		"TIMEOUT": "15",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "EMPTY", "8080"))
	assert.Equal(t, "x", GetString(nil, "PORT", "x"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "FLAG", false))
	assert.True(t, GetBool(c, "BAD", true))
	assert.False(t, GetBool(c, "MISSING", false))

	assert.Equal(t, 15*time.Second, GetSeconds(c, "TIMEOUT", 180))
	assert.Equal(t, 3*time.Minute, GetSeconds(c, "MISSING", 180))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetStrings(c, "ORIGINS"))
	assert.Nil(t, GetStrings(c, "MISSING"))
}
