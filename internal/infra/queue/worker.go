package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WhatsAppSender define o contrato do cliente de WhatsApp usado no follow-up.
type WhatsAppSender interface {
	SendFollowUp(ctx context.Context, phone, name, productName string) error
}

// EmailSender define o contrato do envio de e-mail de follow-up.
type EmailSender interface {
	SendFollowUp(to, name, productName string) error
}

type Worker struct {
	Channel  *amqp.Channel
	WhatsApp WhatsAppSender
	Email    EmailSender
}

func NewWorker(ch *amqp.Channel, whatsapp WhatsAppSender, email EmailSender) *Worker {
	return &Worker{
		Channel:  ch,
		WhatsApp: whatsapp,
		Email:    email,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload FollowUpPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Follow-up de %s via %s", payload.Email, payload.Channel)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no follow-up: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload FollowUpPayload) error {
	switch payload.Channel {
	case ChannelWhatsApp:
		if w.WhatsApp == nil {
			log.Println("⚠️ WhatsApp não configurado, ignorando follow-up")
			return nil
		}
		return w.WhatsApp.SendFollowUp(ctx, payload.Phone, payload.Name, payload.Product)

	case ChannelEmail:
		if w.Email == nil {
			log.Println("⚠️ E-mail não configurado, ignorando follow-up")
			return nil
		}
		return w.Email.SendFollowUp(payload.Email, payload.Name, payload.Product)

	default:
		log.Printf("⚠️ Canal desconhecido: %s. Apenas logando.", payload.Channel)
		// ACK mesmo assim: não sabemos tratar, requeue não ajudaria.
		return nil
	}
}
