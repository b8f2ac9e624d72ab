package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSessionsForwardsQueryAndToken(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"SES-1","region":"EU","energyKwh":12.5}],"page":2,"pageSize":10,"total":11}`))
	}))
	defer srv.Close()

	client := NewSessionsClient(srv.URL+"/", srv.Client())
	page, err := client.ListSessions(context.Background(), "tok", url.Values{"status": {"Completed"}, "page": {"2"}})
	require.NoError(t, err)

	assert.Equal(t, "/sessions", got.URL.Path)
	assert.Equal(t, "Completed", got.URL.Query().Get("status"))
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "EU", page.Items[0].Region)
	assert.Equal(t, 12.5, page.Items[0].EnergyKWh)
}

func TestGetJSONReportsUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewPaymentsClient(srv.URL, srv.Client()).ListInvoices(context.Background(), "", nil)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Contains(t, upstream.Error(), "invalid token")
}

func TestGetJSONRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewPaymentsClient(srv.URL, srv.Client()).ListTransactions(context.Background(), "t", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/payments/transactions")
}
