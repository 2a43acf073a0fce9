package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) count(s string) int {
	return strings.Count(b.String(), s)
}

func TestWatchAndValidate(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "signup.yaml", signupSchema)
	values := writeFile(t, dir, "values.yaml", "password: secret\nconfirmationPassword: other\n")

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchAndValidate(ctx, &out, schema, &validateFlags{values: values}, nil)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Passwords must match")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, out.count("validating"))

	// A burst of writes settles into one pass.
	writeFile(t, dir, "values.yaml", "password: secret\nconfirmationPassword: s\n")
	writeFile(t, dir, "values.yaml", "password: secret\nconfirmationPassword: sec\n")
	writeFile(t, dir, "values.yaml", "password: secret\nconfirmationPassword: secret\n")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "✓ valid")
	}, 5*time.Second, 10*time.Millisecond)
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, 2, out.count("validating"))

	// Unrelated files in the watched directory are ignored.
	writeFile(t, dir, "notes.txt", "hello")
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, 2, out.count("validating"))

	// Errors are printed and the watch keeps going.
	writeFile(t, dir, "signup.yaml", strings.Replace(signupSchema, "{confirmationPassword} =", "{confirmationPassword}", 1))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "error:")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchAndValidate_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "signup.yaml", signupSchema)

	var out syncBuffer
	err := watchAndValidate(context.Background(), &out, schema, &validateFlags{values: dir + "/missing/values.yaml"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
	assert.Empty(t, out.String())
}
