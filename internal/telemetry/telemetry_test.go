package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "")
	p, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := p.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "noop tracer yields invalid span contexts")
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNilProvider(t *testing.T) {
	var p *Provider
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Tracer("x"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_EnabledWithEndpoint(t *testing.T) {
	p, err := New(context.Background(), Config{Endpoint: "127.0.0.1:4318", Insecure: true})
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	_, span := p.Tracer("test").Start(context.Background(), "real")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	// The collector is absent; shutdown must still return within the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = p.Shutdown(ctx)
}

// collector records the paths OTLP/HTTP exports arrive on.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func exportOneSpan(t *testing.T, p *Provider) {
	t.Helper()
	_, span := p.Tracer("test").Start(context.Background(), "exported")
	span.End()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestNew_EndpointURLFromEnv(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	// The env var holds a URL with a scheme, as OTel SDKs document it.
	t.Setenv(EndpointEnv, srv.URL)
	p, err := New(context.Background(), Config{})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	exportOneSpan(t, p)
	assert.Equal(t, []string{"/v1/traces"}, c.received())
}

func TestNew_EndpointHostPort(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	p, err := New(context.Background(), Config{Endpoint: srv.Listener.Addr().String(), Insecure: true})
	require.NoError(t, err)

	exportOneSpan(t, p)
	assert.Equal(t, []string{"/v1/traces"}, c.received())
}

func TestNew_EndpointURLWithBasePath(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	p, err := New(context.Background(), Config{Endpoint: srv.URL + "/otlp/"})
	require.NoError(t, err)

	exportOneSpan(t, p)
	assert.Equal(t, []string{"/otlp/v1/traces"}, c.received())
}

func TestNew_BadEndpointURL(t *testing.T) {
	_, err := New(context.Background(), Config{Endpoint: "http://"})
	assert.ErrorContains(t, err, "missing host")
}
