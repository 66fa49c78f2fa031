package messaging

import (
	"fmt"
	"log"
	"neonatal-triage-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ dials the broker used for high-risk alerts.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
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
	log.Println("Successfully connected to rabbitMQ")
	return conn
}

// DeclareQueue makes sure the durable alert queue exists before publishing.
func DeclareQueue(conn *amqp091.Connection, queue string) error {
	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	return err
}
