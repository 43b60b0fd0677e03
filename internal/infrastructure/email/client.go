// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/email/templates"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Service defines the interface for sending emails, allowing for mock
// implementations in tests.
type Service interface {
	SendStoreActivationEmail(toEmail, storeID, activationURL string) error
	SendStoreReadyEmail(toEmail, storeID, storefrontURL, adminURL string) error
}

// ResendClient is the concrete implementation of the email Service
// using the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client: resend.NewClient(config.ResendAPIKey),
		from:   config.EmailFrom,
	}, nil
}

func (c *ResendClient) SendStoreActivationEmail(toEmail, storeID, activationURL string) error {
	content := templates.GetActivationEmailContent(templates.ActivationEmailProps{
		StoreID:         storeID,
		ActivationURL:   activationURL,
		ExpirationHours: int(config.ProvisionTokenTTL.Hours()),
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: "Activate your DainoStore store",
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{toEmail},
		Subject: "Activate your DainoStore store",
		Html:    htmlContent,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send activation email via Resend: %w", err)
	}
	return nil
}

func (c *ResendClient) SendStoreReadyEmail(toEmail, storeID, storefrontURL, adminURL string) error {
	content := templates.GetStoreReadyEmailContent(templates.StoreReadyEmailProps{
		StoreID:       storeID,
		StorefrontURL: storefrontURL,
		AdminURL:      adminURL,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: "Your DainoStore store is live",
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your store %s is live", storeID),
		Html:    htmlContent,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send store ready email via Resend: %w", err)
	}
	return nil
}
