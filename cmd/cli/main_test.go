package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

// withServer points the CLI at a test server for the duration of fn.
func withServer(t *testing.T, handler http.Handler, fn func()) {
	t.Helper()

	server := httptest.NewServer(handler)
	defer server.Close()

	origURL, origTimeout := baseURL, timeout
	baseURL, timeout = server.URL, 5*time.Second
	defer func() { baseURL, timeout = origURL, origTimeout }()

	fn()
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestRequestCashout(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/cashouts", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"rider_id":"rider-1","total":"250","entries":[{"parcel_id":"p-1","amount":"250"}]}`))
	})

	var out string
	withServer(t, mux, func() {
		out = captureOutput(t, func() {
			requestCashout("rider-1", "250")
		})
	})

	if gotPath != "/api/v1/cashouts" {
		t.Errorf("expected POST to /api/v1/cashouts, got %q", gotPath)
	}
	if gotBody["rider_id"] != "rider-1" || gotBody["amount"] != "250" {
		t.Errorf("unexpected request body: %v", gotBody)
	}

	if !strings.Contains(out, "Cash-out settled") {
		t.Errorf("expected settlement confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, `"total": "250"`) {
		t.Errorf("expected settlement result in output, got:\n%s", out)
	}
}

func TestListParcels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/riders/rider-1/parcels", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p-1","delivery_status":"delivered","earning":"100","paid_amount":"0"}]`))
	})

	var out string
	withServer(t, mux, func() {
		out = captureOutput(t, func() {
			listParcels("rider-1")
		})
	})

	if !strings.Contains(out, "p-1") || !strings.Contains(out, "delivered") {
		t.Errorf("expected parcel row in table output, got:\n%s", out)
	}
}

func TestHashPasswordCmd(t *testing.T) {
	orig := bcryptGenerate
	bcryptGenerate = func(p []byte, cost int) ([]byte, error) {
		return []byte("hashed-value"), nil
	}
	defer func() { bcryptGenerate = orig }()

	cmd := hashPasswordCmd()
	cmd.SetArgs([]string{"secret"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if strings.TrimSpace(out) != "hashed-value" {
		t.Fatalf("expected hashed-value, got %q", out)
	}
}
