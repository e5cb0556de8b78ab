package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/newsletter-server/internal/mocks"
)

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0")
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_Stop(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0")
	err := s.Stop(context.Background())
	assert.NoError(t, err)
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	t.Parallel()

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, errors.New("address in use"))

	err := NewHTTPServer(http.NotFoundHandler(), ":0").Start(sec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestHTTPServer_Start_ListensAndServes(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := NewHTTPServer(handler, ":0")
	sec := mocks.NewSecurityLayer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	sec.On("Listen", "tcp", ":0").Return(ln, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(sec) }()

	client := &http.Client{Timeout: time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/", ln.Addr().String()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}
