package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBName(t *testing.T) {
	assert.Equal(t, "voxa", DBName("mongodb://localhost:27017"))
	assert.Equal(t, "voxa", DBName("mongodb://localhost:27017/"))
	assert.Equal(t, "journaling", DBName("mongodb://localhost:27017/journaling"))
	assert.Equal(t, "prod", DBName("mongodb+srv://u:p@cluster.mongodb.net/prod?retryWrites=true"))
}
