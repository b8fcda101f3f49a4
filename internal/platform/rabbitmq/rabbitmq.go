package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dial is swappable in tests.
var dial = amqp.Dial

type dialResult struct {
	conn *amqp.Connection
	err  error
}

// New dials the broker and opens a throwaway channel to prove the connection
// is actually usable, not just TCP-established.
func New(ctx context.Context, url string) (*amqp.Connection, error) {
	done := make(chan dialResult, 1)
	go func() {
		conn, err := dial(url)
		done <- dialResult{conn: conn, err: err}
	}()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	select {
	case <-checkCtx.Done():
		// a connection that completes after the deadline is closed, not leaked
		go func() {
			if r := <-done; r.err == nil && r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, fmt.Errorf("dial rabbitmq timeout: %w", checkCtx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("dial rabbitmq failed: %w", r.err)
		}
		ch, err := r.conn.Channel()
		if err != nil {
			_ = r.conn.Close()
			return nil, fmt.Errorf("open rabbitmq channel failed: %w", err)
		}
		_ = ch.Close()
		return r.conn, nil
	}
}
