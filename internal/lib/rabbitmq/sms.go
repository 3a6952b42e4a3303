package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// SMSPublisher публикует задания на SMS-подтверждения в очередь уведомлений.
type SMSPublisher struct {
	ch *amqp.Channel
}

// NewSMSPublisher создает издателя поверх открытого канала.
func NewSMSPublisher(ch *amqp.Channel) *SMSPublisher {
	return &SMSPublisher{ch: ch}
}

// PublishSMSJob публикует задание в exchange уведомлений.
func (p *SMSPublisher) PublishSMSJob(job models.SMSJob) error {
	return PublishMessage(p.ch, NotificationsExchange, SMSRoutingKey, job)
}
