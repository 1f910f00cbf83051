package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/isp-backoffice-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "backoffice",
		Password: "it's secret",
		Name:     "isp_backoffice",
		SSLMode:  "disable",
	})
	assert.Equal(t, `host=db port=5432 user=backoffice password='it\'s secret' dbname=isp_backoffice sslmode=disable application_name=isp-backoffice`, dsn)
}

func TestDSNSkipsEmptyValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, Name: "isp"})
	assert.Equal(t, "host=localhost port=5432 dbname=isp application_name=isp-backoffice", dsn)
}
