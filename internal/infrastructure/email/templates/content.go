package templates

import (
	"fmt"
	"strings"
)

type ActivationEmailProps struct {
	StoreID         string
	ActivationURL   string
	ExpirationHours int
}

// GetActivationEmailContent composes the body of the store activation
// email sent after a merchant reserves a store.
func GetActivationEmailContent(props ActivationEmailProps) string {
	expiration := props.ExpirationHours
	if expiration <= 0 {
		expiration = 48
	}

	var content strings.Builder
	content.WriteString(GetParagraph("Welcome to DainoStore!"))
	content.WriteString(GetParagraph(fmt.Sprintf(
		"Your store %q has been reserved. Click the button below to activate it and start provisioning your storefront.",
		props.StoreID)))
	content.WriteString(GetButton(ButtonProps{
		Text: "Activate your store",
		URL:  props.ActivationURL,
	}))
	content.WriteString(GetParagraph("Or copy this link into your browser:"))
	content.WriteString(GetCodeBlock(props.ActivationURL))
	content.WriteString(GetParagraph(fmt.Sprintf(
		"This activation link expires in %d hours. If you did not request a store, you can safely ignore this email.",
		expiration)))
	return content.String()
}

type StoreReadyEmailProps struct {
	StoreID       string
	StorefrontURL string
	AdminURL      string
}

// GetStoreReadyEmailContent composes the body of the email sent when
// provisioning completes and the store goes active.
func GetStoreReadyEmailContent(props StoreReadyEmailProps) string {
	var content strings.Builder
	content.WriteString(GetParagraph(fmt.Sprintf("Your store %q is live!", props.StoreID)))
	content.WriteString(GetParagraph(
		"Provisioning has finished. Your storefront is serving and your admin panel is ready for catalog and layout editing."))
	content.WriteString(GetButton(ButtonProps{
		Text: "Open your storefront",
		URL:  props.StorefrontURL,
	}))
	if props.AdminURL != "" {
		content.WriteString(GetParagraph("Manage your catalog, layouts, and settings here:"))
		content.WriteString(GetCodeBlock(props.AdminURL))
	}
	return content.String()
}
