package ebarimt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zolbooo/ebarimt/pkg/ebarimt"
)

func TestLookupMerchant(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("regno") == "5317878" {
			_, _ = w.Write([]byte(`{"found":true,"name":"Example LLC","vatpayer":true,"citypayer":true,"freeProject":false}`))
			return
		}

		_, _ = w.Write([]byte(`{"found":false}`))
	}))
	t.Cleanup(server.Close)

	info, err := ebarimt.LookupMerchant(t.Context(), "5317878", ebarimt.WithRegistryBaseURL(server.URL))
	require.NoError(t, err)
	assert.Equal(t, &ebarimt.MerchantInfo{Name: "Example LLC", VATPayer: true, CityPayer: true}, info)

	missing, err := ebarimt.LookupMerchant(t.Context(), "0000000", ebarimt.WithRegistryBaseURL(server.URL))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNewMerchantRegistry_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := ebarimt.NewMerchantRegistry(ebarimt.WithRegistryBaseURL("info.ebarimt.mn"))

	assert.Error(t, err)
}
