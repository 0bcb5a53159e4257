package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"velora_back_end/internal/models"
)

func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@velora.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_velora.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmation compose et envoie l'e-mail de confirmation :
// facture PDF en pièce jointe et QR SEPA si l'IBAN est configuré.
func SendOrderConfirmation(order models.Order) {
	if order.UserEmail == "" {
		return
	}

	pdfBytes, err := GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("❌ Erreur génération PDF commande %s: %v", order.ID, err)
		pdfBytes = nil
	}

	qrBase64 := ""
	iban := os.Getenv("COMPANY_IBAN")
	bic := os.Getenv("COMPANY_BIC")
	if iban != "" && bic != "" {
		qr, err := GenerateSepaQR(iban, bic, os.Getenv("COMPANY_NAME"),
			"FACT-"+order.ID.String(), order.TotalPrice)
		if err != nil {
			log.Println("❌ erreur QR:", err)
		} else {
			qrBase64 = qr
		}
	}

	html := GenerateOrderConfirmationHTML(order, qrBase64)
	if err := SendEmail(order.UserEmail, "Confirmation de votre commande", html, pdfBytes); err != nil {
		log.Printf("❌ Erreur envoi e-mail commande %s: %v", order.ID, err)
	}
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// qrBase64 est le QR SEPA optionnel (data URI), vide si non disponible.
func GenerateOrderConfirmationHTML(order models.Order, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">$ %s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">$ %s</td>
			</tr>`,
			item.Product.Title, item.Quantity,
			FormatAmount(item.Product.Price),
			FormatAmount(item.Product.Price*float64(item.Quantity)))
	}

	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`<p>Paiement par virement :</p><img src="%s" alt="QR SEPA" width="180" height="180"/>`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès. Votre facture est en pièce jointe.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p><strong>Total : $ %s</strong></p>
		%s
	</div>
</body>
</html>`, itemsHTML, FormatAmount(order.TotalPrice), qrHTML)
}

// GenerateResetPasswordHTML génère le HTML de réinitialisation de mot de passe
func GenerateResetPasswordHTML(resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Réinitialisation du mot de passe</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Réinitialisation de votre mot de passe</h2>
		<p>Vous avez demandé une réinitialisation de mot de passe.</p>
		<p><a href="%s" style="color: #2563eb;">Cliquez ici pour définir un nouveau mot de passe</a></p>
		<p>Ce lien expire dans une heure. Si vous n'êtes pas à l'origine de cette demande, ignorez cet e-mail.</p>
	</div>
</body>
</html>`, resetLink)
}
