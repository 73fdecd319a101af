// SPDX-FileCopyrightText: Copyright 2024 Prasad Tengse
// SPDX-License-Identifier: MIT

package shared

import (
	"context"
	"testing"
	"time"
)

// defaultTimeout is used when timeout is not positive.
const defaultTimeout = 30 * time.Second

// TestingCtx returns a context which is canceled after timeout or at the
// test deadline, whichever is earlier.
//
// Per test timeouts are not available, see https://github.com/golang/go/issues/48157.
func TestingCtx(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if timeout <= 0 {
		t.Logf("Ignoring invalid timeout value: %s", timeout)
		timeout = defaultTimeout
	}

	deadline := time.Now().Add(timeout)
	if ts, ok := t.Deadline(); ok && ts.Before(deadline) {
		deadline = ts
	}
	return context.WithDeadline(context.Background(), deadline)
}
