package mail

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/gmail/v1"
)

// ErrTransmission indicates the mail API rejected or failed a send.
var ErrTransmission = errors.New("message transmission failure")

type sendSvc interface {
	SendMessage(ctx context.Context, raw string) (*gmail.Message, error)
}

// NewSender creates a Sender over a Gmail service wrapper.
func NewSender(svc sendSvc) *Sender {
	return &Sender{svc: svc}
}

// Sender transmits composed messages. No retry at this layer.
type Sender struct {
	svc sendSvc
}

// Send transmits msg and returns the provider-assigned message id.
func (s *Sender) Send(ctx context.Context, msg Outbound) (string, error) {
	sent, err := s.svc.SendMessage(ctx, msg.Raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransmission, err)
	}

	log.Printf("Sent message id: %s", sent.Id)

	return sent.Id, nil
}
