package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate("secreto", "sst", "u-1", "auditor@acme.co", "auditor", time.Hour)
	require.NoError(t, err)

	c, err := Parse("secreto", "sst", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "auditor@acme.co", c.Email)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := Generate("secreto", "sst", "u-1", "", "", time.Hour)
	require.NoError(t, err)

	_, err = Parse("otro", "sst", tok)
	assert.Error(t, err, "firma incorrecta")

	_, err = Parse("secreto", "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	vencido, err := Generate("secreto", "sst", "u-1", "", "", -time.Minute)
	require.NoError(t, err)
	_, err = Parse("secreto", "sst", vencido)
	assert.Error(t, err, "token vencido")

	_, err = Generate("", "sst", "u-1", "", "", time.Hour)
	assert.Error(t, err)
}
