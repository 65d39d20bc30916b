package benchmark

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/finbridge/cashkick-service/internal/config"
)

const feedResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgram>
          <KeyRate>
            <KR>
              <DT>2026-08-28T00:00:00+03:00</DT>
              <Rate>16.00</Rate>
            </KR>
            <KR>
              <DT>2026-08-27T00:00:00+03:00</DT>
              <Rate>15.50</Rate>
            </KR>
          </KeyRate>
        </diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGetBenchmarkRate(t *testing.T) {
	t.Run("latest rate plus platform margin", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			_, _ = w.Write([]byte(feedResponse))
		}))
		defer srv.Close()

		client := NewClient(&config.Config{BenchmarkURL: srv.URL}, testLogger())
		rate, err := client.GetBenchmarkRate()
		if err != nil {
			t.Fatalf("GetBenchmarkRate failed: %v", err)
		}
		if rate != 16.00+platformMargin {
			t.Errorf("rate = %v, want %v", rate, 16.00+platformMargin)
		}
	})

	t.Run("feed error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(&config.Config{BenchmarkURL: srv.URL}, testLogger())
		if _, err := client.GetBenchmarkRate(); err == nil {
			t.Fatal("expected error from failing feed")
		}
	})

	t.Run("missing rate data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><empty/>`))
		}))
		defer srv.Close()

		client := NewClient(&config.Config{BenchmarkURL: srv.URL}, testLogger())
		if _, err := client.GetBenchmarkRate(); err == nil {
			t.Fatal("expected error for response without rate data")
		}
	})
}
