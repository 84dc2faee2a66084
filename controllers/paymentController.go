package controllers

import (
	"encoding/json"
	"log"
	"time"

	"consultancy-backend/database"
	"consultancy-backend/models"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
)

const paymentSucceeded = "payment_intent.succeeded"

// StripeWebhook returns a handler that marks the invoice named in a succeeded
// payment intent's metadata as Paid. Once the signature checks out the event
// is always acknowledged so Stripe does not retry it.
func StripeWebhook(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := webhook.ConstructEventWithOptions(
			c.Body(),
			c.Get("Stripe-Signature"),
			secret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
		)
		if err != nil {
			log.Printf("[STRIPE] rejected event: %v", err)
			return fiber.NewError(fiber.StatusBadRequest, "invalid signature")
		}
		ack := func() error { return c.JSON(fiber.Map{"received": true}) }

		if string(event.Type) != paymentSucceeded {
			log.Printf("[STRIPE] ignoring event type %s", event.Type)
			return ack()
		}
		var pi stripe.PaymentIntent
		if event.Data == nil || json.Unmarshal(event.Data.Raw, &pi) != nil {
			log.Printf("[STRIPE] event %s has no payment intent", event.ID)
			return ack()
		}
		invoiceID := pi.Metadata["invoice_id"]
		if invoiceID == "" {
			log.Printf("[STRIPE] payment %s has no invoice_id in metadata", pi.ID)
			return ack()
		}

		db, err := database.FromCtx(c)
		if err != nil {
			return err
		}
		paidAt := time.Unix(event.Created, 0).UTC()
		res, err := services.NewInvoiceService(db).SetStatus(c.UserContext(), invoiceID, models.InvoicePaid, &paidAt)
		if err != nil {
			log.Printf("[STRIPE] failed to mark invoice %s paid: %v", invoiceID, err)
			if services.IsNotFound(err) {
				return ack()
			}
			// Let Stripe retry on storage failures.
			return err
		}
		log.Printf("[STRIPE] invoice %s marked paid (payment %s, revenue created: %t)",
			res.Invoice.InvoiceNumber, pi.ID, res.RevenueCreated)
		return ack()
	}
}
