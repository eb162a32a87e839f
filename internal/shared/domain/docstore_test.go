package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringsField_AcceptsBothArrayShapes(t *testing.T) {
	fields := map[string]any{
		"favorites":      []string{"e1", "e2"},
		"participations": []any{"e3", "e4"}, // forma devolvida pelos decoders JSON/BSON
		"name":           "Ana",
		"mixed":          []any{"e5", 42, "e6"},
	}

	assert.Equal(t, []string{"e1", "e2"}, StringsField(fields, "favorites"))
	assert.Equal(t, []string{"e3", "e4"}, StringsField(fields, "participations"))
	assert.Equal(t, []string{"e5", "e6"}, StringsField(fields, "mixed"), "elementos não-string são ignorados")
}

func TestStringsField_MissingFieldIsEmptySet(t *testing.T) {
	assert.Empty(t, StringsField(map[string]any{"name": "Ana"}, "favorites"))
	assert.Empty(t, StringsField(nil, "favorites"))
	assert.Empty(t, StringsField(map[string]any{"favorites": "not-an-array"}, "favorites"))
}

func TestStoreError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("get", CollectionUsers, "u1", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "users")
	assert.Contains(t, err.Error(), "u1")
}
