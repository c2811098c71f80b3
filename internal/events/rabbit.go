package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Dial connects to the broker. The caller owns the connection.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}
