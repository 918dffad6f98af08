package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/eggnunes/crmidea-sub000/internal/infra/http/middleware"
)

const (
	ChannelWhatsApp = "WHATSAPP"
	ChannelEmail    = "EMAIL"
)

// FollowUpPayload agenda o contato de recuperação de um lead importado
// (tipicamente carrinho abandonado).
type FollowUpPayload struct {
	LeadID  string `json:"lead_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Product string `json:"product"`
	Channel string `json:"channel"` // WHATSAPP, EMAIL
}

type QueueProducerInterface interface {
	PublishFollowUp(ctx context.Context, payload FollowUpPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishFollowUp(ctx context.Context, payload FollowUpPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	middleware.RecordFollowUp(payload.Channel)
	return nil
}
