package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Mailer envoie les emails transactionnels. L'envoi est toujours
// fire-and-forget côté appelant : une erreur ici ne fait jamais échouer
// la requête parente.
type Mailer struct {
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
}

type MailerConfig struct {
	APIKey      string
	SenderName  string
	SenderEmail string
}

func NewMailer(config *MailerConfig) *Mailer {
	return &Mailer{
		apiKey:      config.APIKey,
		senderName:  config.SenderName,
		senderEmail: config.SenderEmail,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled indique si une clé API Brevo est configurée
func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

type brevoContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// SendWelcomeEmail envoie les identifiants générés à un consultant
// fraîchement provisionné
func (m *Mailer) SendWelcomeEmail(ctx context.Context, email, username, password string) error {
	if !m.Enabled() {
		log.Printf("[MAILER] BREVO_API_KEY non configurée, email de bienvenue ignoré pour %s", username)
		return nil
	}

	payload := brevoPayload{
		Sender: brevoContact{
			Name:  m.senderName,
			Email: m.senderEmail,
		},
		To: []brevoContact{
			{Email: email, Name: username},
		},
		Subject:     "Vos identifiants de connexion - Plateforme Objectifs",
		HTMLContent: welcomeHTML(username, password),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("impossible de sérialiser l'email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("impossible de construire la requête Brevo: %w", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("envoi email échoué: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("envoi email échoué: status %d", resp.StatusCode)
	}

	log.Printf("[MAILER] Email de bienvenue envoyé à %s", email)
	return nil
}

func welcomeHTML(username, password string) string {
	return fmt.Sprintf(`
      <!DOCTYPE html>
      <html>
      <head>
        <meta charset="UTF-8">
        <style>
          body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
          .container { max-width: 600px; margin: 0 auto; padding: 20px; }
          .header { background: #3b82f6; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
          .content { background: #f9fafb; padding: 20px; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; }
          .credentials { background: white; padding: 15px; border-left: 4px solid #3b82f6; margin: 15px 0; }
        </style>
      </head>
      <body>
        <div class="container">
          <div class="header">
            <h2 style="margin: 0;">Bienvenue sur la plateforme Objectifs</h2>
          </div>
          <div class="content">
            <p>Bonjour,</p>
            <p>Votre compte consultant a été créé avec succès.</p>
            <div class="credentials">
              <h3>Vos identifiants de connexion</h3>
              <p><strong>Nom d'utilisateur :</strong> %s</p>
              <p><strong>Mot de passe :</strong> %s</p>
            </div>
            <p>Vous pouvez maintenant vous connecter pour consulter vos objectifs,
            suivre votre progression et échanger avec votre manager.</p>
            <p style="margin-top: 20px;">À bientôt !</p>
          </div>
        </div>
      </body>
      </html>`, username, password)
}
