package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Имя exchange и ключ маршрутизации для SMS-подтверждений заявок.
const (
	NotificationsExchange = "notifications"
	SMSRoutingKey         = "sms.form"
	SMSQueueName          = "notification.sms"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений приложения.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: SMSQueueName, RoutingKey: SMSRoutingKey},
	}
}

// SetupTopology объявляет exchange и очереди уведомлений с привязками.
// Вызывается и издателем, и потребителем: объявления идемпотентны.
func SetupTopology(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupTopology"
	if err := ch.ExchangeDeclare(NotificationsExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range GetNotificationQueues() {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, NotificationsExchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Connect открывает соединение и канал RabbitMQ и настраивает топологию.
func Connect(url string) (*amqp.Connection, *amqp.Channel, error) {
	const op = "rabbitmq.Connect"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := SetupTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}
