package es

import (
	"errors"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndexName = "mt_segments"

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

// Validate fills the default index name and rejects a config without nodes
// or with only half of the basic auth credentials.
func (c *ClientConfig) Validate() error {
	if len(c.Addresses) == 0 {
		return errors.New("at least one elasticsearch address is required")
	}
	if (c.Username == "") != (c.Password == "") {
		return errors.New("elasticsearch username and password must be set together")
	}
	if c.IndexName == "" {
		c.IndexName = DefaultIndexName
	}
	return nil
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	return elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses:     config.Addresses,
		Username:      config.Username,
		Password:      config.Password,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests},
		MaxRetries:    3,
	})
}
