package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/dto"
)

func TestValidatePayloadReportsJSONPaths(t *testing.T) {
	payload := validCustomerPayload()
	payload.Status = "PAUSED"
	payload.BundleSubscriptions = append(payload.BundleSubscriptions, dto.SubscriptionPayload{BundleID: "b1", Status: "ACTIVE"})

	fields, err := validatePayload(NewValidator(), payload, "invalid customer payload")
	require.NoError(t, err)
	got := fieldMap(fields)
	assert.Equal(t, "status must be one of: ACTIVE INACTIVE", got["status"])
	idx := len(payload.BundleSubscriptions) - 1
	assert.Equal(t, "address is required", got[subscriptionPath(idx, "address")])
	assert.Equal(t, "city is required", got[subscriptionPath(idx, "city")])
}

func TestValidatePayloadAcceptsValid(t *testing.T) {
	fields, err := validatePayload(NewValidator(), validCustomerPayload(), "invalid customer payload")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestValidatePayloadRejectsNonStruct(t *testing.T) {
	_, err := validatePayload(NewValidator(), "not a struct", "invalid")
	assert.Error(t, err)
}

func subscriptionPath(i int, field string) string {
	return fmt.Sprintf("bundleSubscriptions[%d].location.%s", i, field)
}
