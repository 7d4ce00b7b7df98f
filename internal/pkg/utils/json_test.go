package utils

import (
	"testing"

	"inkbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToList_CommaFallback(t *testing.T) {
	assert.Equal(t, []string{"blackwork", "dotwork"}, StringToList("blackwork,dotwork"))
	assert.Equal(t, []string{}, StringToList(""))
	assert.Equal(t, "[]", ListToString(nil))
}

func TestAvailabilityToString_KeepsNilAndEmptyApart(t *testing.T) {
	assert.Equal(t, "", AvailabilityToString(nil))
	assert.Equal(t, "{}", AvailabilityToString(domain.Availability{}))

	got, err := StringToAvailability("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = StringToAvailability("{}")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = StringToAvailability("{not json")
	assert.Error(t, err)
}
