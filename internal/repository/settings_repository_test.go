package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestJoinListFromArray(t *testing.T) {
	result := gjson.Parse(`["saas", "fintech", "health"]`)

	assert.Equal(t, "saas, fintech, health", joinList(result))
}

func TestJoinListLegacyStringPassthrough(t *testing.T) {
	result := gjson.Parse(`"saas, fintech"`)

	assert.Equal(t, "saas, fintech", joinList(result))
}

func TestJoinListMissingField(t *testing.T) {
	result := gjson.Get(`{}`, "skills")

	assert.Equal(t, "", joinList(result))
}
