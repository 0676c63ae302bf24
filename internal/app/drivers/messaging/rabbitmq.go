package messaging

import (
	"fmt"
	"log"

	"carelink-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ dials the broker and declares the durable queues the
// service publishes to, so the first publish never lands on a missing queue.
func NewRabbitMQ(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open rabbitMQ channel: %s", err.Error())
	}
	defer channel.Close()

	queues := []string{internalConfig.RabbitMQ.MailerQueue}
	for _, queue := range queues {
		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			log.Fatalf("Failed to declare rabbitMQ queue %s: %s", queue, err.Error())
		}
	}

	log.Println("Successfully connected to rabbitMQ")
	return conn
}
