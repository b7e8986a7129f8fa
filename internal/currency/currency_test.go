package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrohunt/retro-hunter/pkg/logger"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func TestConvert_USDIdentity(t *testing.T) {
	t.Parallel()

	c := New(WithLogger(logger.Nop()))
	assert.Equal(t, "19.99", c.Convert(19.99, domain.CurrencyUSD))
	assert.Equal(t, "0.00", c.Convert(0, domain.CurrencyUSD))
}

func TestConvert_EURUsesRate(t *testing.T) {
	t.Parallel()

	c := New(WithLogger(logger.Nop()))
	c.rate = 0.9
	assert.Equal(t, "90.00", c.Convert(100, domain.CurrencyEUR))
	assert.Equal(t, "17.99", c.Convert(19.99, domain.CurrencyEUR))
}

func TestConvert_UnknownCurrencyFallsBackToUSD(t *testing.T) {
	t.Parallel()

	c := New(WithLogger(logger.Nop()))
	assert.Equal(t, "10.00", c.Convert(10, domain.Currency("GBP")))
}

func TestSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$", Symbol(domain.CurrencyUSD))
	assert.Equal(t, "€", Symbol(domain.CurrencyEUR))
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92,"GBP":0.79}}`))
	}))
	defer srv.Close()

	c := New(WithProviderURL(srv.URL), WithLogger(logger.Nop()))
	got := c.Refresh(context.Background())
	assert.Equal(t, 0.92, got)
	assert.Equal(t, 0.92, c.Rate())
	assert.False(t, c.Refreshing())
}

func TestRefresh_FallsBackOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "missing EUR field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"rates":{"GBP":0.79}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(WithProviderURL(srv.URL), WithLogger(logger.Nop()))
			c.rate = 0.99 // pre-existing cached rate gets replaced by the fallback

			got := c.Refresh(context.Background())
			assert.Equal(t, FallbackRate, got)
			assert.Equal(t, FallbackRate, c.Rate())
			assert.False(t, c.Refreshing(), "in-progress flag cleared on failure")
		})
	}
}

func TestRefresh_NetworkFailure(t *testing.T) {
	t.Parallel()

	c := New(WithProviderURL("http://127.0.0.1:1"), WithLogger(logger.Nop()))
	got := c.Refresh(context.Background())
	assert.Equal(t, FallbackRate, got)
	assert.False(t, c.Refreshing())
}
