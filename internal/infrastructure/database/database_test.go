package database

import (
	"testing"

	"payrelay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorSelectsDriver(t *testing.T) {
	d, err := Dialector(&config.DatabaseConfig{DSN: "host=localhost user=app dbname=app"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&config.DatabaseConfig{Driver: "mysql", DSN: "root:pw@tcp(localhost:3306)/shop"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestDialectorRejectsBadConfig(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "postgres"})
	assert.ErrorIs(t, err, ErrEmptyDSN)

	_, err = Dialector(&config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
