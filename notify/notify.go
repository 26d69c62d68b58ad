// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify tells donors when their listing is claimed.
package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/danielhkuo/foodshare/models"
)

type Notifier interface {
	ListingClaimed(ctx context.Context, listing models.FoodListing, receiverEmail string) error
}

// Nop discards notifications
type Nop struct{}

func (Nop) ListingClaimed(ctx context.Context, listing models.FoodListing, receiverEmail string) error {
	return nil
}

// Mailer sends notifications over SMTP
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) ListingClaimed(ctx context.Context, listing models.FoodListing, receiverEmail string) error {
	if err := m.dialer.DialAndSend(claimMessage(m.from, listing, receiverEmail)); err != nil {
		return fmt.Errorf("failed to send claim notification: %w", err)
	}
	return nil
}

func claimMessage(from string, listing models.FoodListing, receiverEmail string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", listing.DonorEmail)
	msg.SetHeader("Reply-To", receiverEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your listing %q has been claimed", listing.FoodName))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Good news! %s claimed your listing.\n\nFood: %s\nQuantity: %s\nPickup location: %s\n\nReply to this email to arrange the pickup.\n",
		receiverEmail, listing.FoodName, listing.Quantity, listing.PickupLocation,
	))
	return msg
}
